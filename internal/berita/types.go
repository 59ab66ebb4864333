package berita

import (
	"time"

	"github.com/muhtegaralfikri/bbi-backend/internal/db"
)

// CreateInput carries a new article. The *_En fields are optional manual
// translations; fields the admin leaves empty are filled by enrichment when
// the article is published.
type CreateInput struct {
	Judul          string
	Ringkasan      string
	IsiKonten      string
	JudulEn        string
	RingkasanEn    string
	IsiKontenEn    string
	GambarUtamaURL string
	Status         string
	Galeri         []string
}

// UpdateInput carries a partial update; nil pointers leave fields untouched.
// A nil Galeri keeps the existing gallery, an empty non-nil slice clears it.
type UpdateInput struct {
	Judul          *string
	Ringkasan      *string
	IsiKonten      *string
	JudulEn        *string
	RingkasanEn    *string
	IsiKontenEn    *string
	GambarUtamaURL *string
	Status         *string
	Galeri         []string
	GaleriSet      bool
}

// PenulisView exposes only the author's display name publicly.
type PenulisView struct {
	NamaLengkap string `json:"nama_lengkap"`
}

type ListItem struct {
	ID             string      `json:"id"`
	Judul          string      `json:"judul"`
	JudulEn        *string     `json:"judul_en"`
	Slug           string      `json:"slug"`
	Ringkasan      string      `json:"ringkasan"`
	RingkasanEn    *string     `json:"ringkasan_en"`
	GambarUtamaURL string      `json:"gambar_utama_url"`
	PublishedAt    *time.Time  `json:"published_at"`
	Penulis        PenulisView `json:"penulis"`
}

type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	LastPage int   `json:"lastPage"`
}

type ListResult struct {
	Data []ListItem `json:"data"`
	Meta Meta       `json:"meta"`
}

type GalleryImage struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
	Urutan   int    `json:"urutan"`
}

// KomentarInput is a reader-submitted comment before normalization.
type KomentarInput struct {
	Nama  string
	Email string
	Isi   string
}

type KomentarView struct {
	ID        string    `json:"id"`
	Nama      string    `json:"nama"`
	Isi       string    `json:"isi"`
	CreatedAt time.Time `json:"created_at"`
}

type Detail struct {
	ID             string         `json:"id"`
	Judul          string         `json:"judul"`
	JudulEn        *string        `json:"judul_en"`
	Slug           string         `json:"slug"`
	Ringkasan      string         `json:"ringkasan"`
	RingkasanEn    *string        `json:"ringkasan_en"`
	IsiKonten      string         `json:"isi_konten"`
	IsiKontenEn    *string        `json:"isi_konten_en"`
	GambarUtamaURL string         `json:"gambar_utama_url"`
	PublishedAt    *time.Time     `json:"published_at"`
	Penulis        PenulisView    `json:"penulis"`
	Galeri         []GalleryImage `json:"galeri"`
	Komentar       []KomentarView `json:"komentar"`
}

// SubmitKomentarResult deliberately echoes nothing back beyond id and state:
// submission is fire-and-forget for the public caller.
type SubmitKomentarResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// BeritaRef gives moderation rows their parent-article context.
type BeritaRef struct {
	ID    string `json:"id"`
	Judul string `json:"judul"`
	Slug  string `json:"slug"`
}

type ModerationItem struct {
	ID         string     `json:"id"`
	Nama       string     `json:"nama"`
	Email      string     `json:"email"`
	Isi        string     `json:"isi"`
	Status     string     `json:"status"`
	ApprovedAt *time.Time `json:"approved_at"`
	CreatedAt  time.Time  `json:"created_at"`
	Berita     *BeritaRef `json:"berita,omitempty"`
}

func buildListItem(row *db.Berita) ListItem {
	item := ListItem{
		ID:             row.ID,
		Judul:          row.Judul,
		JudulEn:        row.JudulEn,
		Slug:           row.Slug,
		Ringkasan:      row.Ringkasan,
		RingkasanEn:    row.RingkasanEn,
		GambarUtamaURL: row.GambarUtamaURL,
		PublishedAt:    row.PublishedAt,
	}
	if row.Penulis != nil {
		item.Penulis = PenulisView{NamaLengkap: row.Penulis.NamaLengkap}
	}
	return item
}

func buildDetail(row *db.Berita) *Detail {
	detail := &Detail{
		ID:             row.ID,
		Judul:          row.Judul,
		JudulEn:        row.JudulEn,
		Slug:           row.Slug,
		Ringkasan:      row.Ringkasan,
		RingkasanEn:    row.RingkasanEn,
		IsiKonten:      row.IsiKonten,
		IsiKontenEn:    row.IsiKontenEn,
		GambarUtamaURL: row.GambarUtamaURL,
		PublishedAt:    row.PublishedAt,
		Galeri:         make([]GalleryImage, 0, len(row.Galeri)),
		Komentar:       make([]KomentarView, 0, len(row.Komentar)),
	}
	if row.Penulis != nil {
		detail.Penulis = PenulisView{NamaLengkap: row.Penulis.NamaLengkap}
	}
	for _, image := range row.Galeri {
		detail.Galeri = append(detail.Galeri, GalleryImage{
			ID:       image.ID,
			ImageURL: image.ImageURL,
			Urutan:   image.Urutan,
		})
	}
	for _, komentar := range row.Komentar {
		detail.Komentar = append(detail.Komentar, KomentarView{
			ID:        komentar.ID,
			Nama:      komentar.Nama,
			Isi:       komentar.Isi,
			CreatedAt: komentar.CreatedAt,
		})
	}
	return detail
}

func buildKomentarView(row *db.KomentarBerita) KomentarView {
	return KomentarView{
		ID:        row.ID,
		Nama:      row.Nama,
		Isi:       row.Isi,
		CreatedAt: row.CreatedAt,
	}
}

func buildModerationItem(row *db.KomentarBerita) ModerationItem {
	item := ModerationItem{
		ID:         row.ID,
		Nama:       row.Nama,
		Email:      row.Email,
		Isi:        row.Isi,
		Status:     row.Status,
		ApprovedAt: row.ApprovedAt,
		CreatedAt:  row.CreatedAt,
	}
	if row.Berita != nil {
		item.Berita = &BeritaRef{
			ID:    row.Berita.ID,
			Judul: row.Berita.Judul,
			Slug:  row.Berita.Slug,
		}
	}
	return item
}
