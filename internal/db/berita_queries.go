package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/muhtegaralfikri/bbi-backend/internal/globaltime"
)

// CreateBerita inserts the article together with its gallery rows.
func (p *Pool) CreateBerita(ctx context.Context, berita *Berita) error {
	if berita.ID == "" {
		berita.ID = uuid.NewString()
	}
	now := globaltime.UTC()
	berita.CreatedAt = now
	berita.UpdatedAt = now
	for i := range berita.Galeri {
		if berita.Galeri[i].ID == "" {
			berita.Galeri[i].ID = uuid.NewString()
		}
		berita.Galeri[i].BeritaID = berita.ID
		berita.Galeri[i].Urutan = i
		berita.Galeri[i].CreatedAt = now
	}

	if err := p.gdb.WithContext(ctx).Create(berita).Error; err != nil {
		return fmt.Errorf("insert berita: %w", err)
	}
	return nil
}

// SaveBerita persists all scalar columns of an already-loaded article.
func (p *Pool) SaveBerita(ctx context.Context, berita *Berita) error {
	berita.UpdatedAt = globaltime.UTC()
	err := p.gdb.WithContext(ctx).
		Model(&Berita{}).
		Where("id = ?", berita.ID).
		Select("judul", "judul_en", "ringkasan", "ringkasan_en", "isi_konten", "isi_konten_en",
			"slug", "gambar_utama_url", "status", "published_at", "updated_at").
		Updates(berita).Error
	if err != nil {
		return fmt.Errorf("update berita: %w", err)
	}
	return nil
}

// ReplaceGaleri swaps the article's gallery for the given image URLs, keeping
// slice order as display order.
func (p *Pool) ReplaceGaleri(ctx context.Context, beritaID string, imageURLs []string) error {
	now := globaltime.UTC()
	return p.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("berita_id = ?", beritaID).Delete(&GaleriBerita{}).Error; err != nil {
			return fmt.Errorf("delete galeri: %w", err)
		}
		for i, url := range imageURLs {
			row := GaleriBerita{
				ID:        uuid.NewString(),
				BeritaID:  beritaID,
				ImageURL:  url,
				Urutan:    i,
				CreatedAt: now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert galeri row: %w", err)
			}
		}
		return nil
	})
}

// DeleteBerita removes the article and everything it owns.
func (p *Pool) DeleteBerita(ctx context.Context, id string) error {
	return p.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("berita_id = ?", id).Delete(&KomentarBerita{}).Error; err != nil {
			return fmt.Errorf("delete komentar: %w", err)
		}
		if err := tx.Where("berita_id = ?", id).Delete(&GaleriBerita{}).Error; err != nil {
			return fmt.Errorf("delete galeri: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&Berita{})
		if res.Error != nil {
			return fmt.Errorf("delete berita: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoRows
		}
		return nil
	})
}

func (p *Pool) GetBeritaByID(ctx context.Context, id string) (*Berita, error) {
	var row Berita
	err := p.gdb.WithContext(ctx).
		Preload("Galeri", func(tx *gorm.DB) *gorm.DB { return tx.Order("urutan ASC") }).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetBeritaBySlug looks a slug up regardless of status. Used for uniqueness
// checks before create/update.
func (p *Pool) GetBeritaBySlug(ctx context.Context, slug string) (*Berita, error) {
	var row Berita
	err := p.gdb.WithContext(ctx).First(&row, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetPublishedBySlug loads a published article with author, gallery, and
// approved comments in creation order.
func (p *Pool) GetPublishedBySlug(ctx context.Context, slug string) (*Berita, error) {
	var row Berita
	err := p.gdb.WithContext(ctx).
		Preload("Penulis").
		Preload("Galeri", func(tx *gorm.DB) *gorm.DB { return tx.Order("urutan ASC") }).
		Preload("Komentar", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("status = ?", KomentarStatusApproved).Order("created_at ASC")
		}).
		First(&row, "slug = ? AND status = ?", slug, BeritaStatusPublished).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListPublishedPage returns one page of published articles ordered by
// published_at descending, plus the total count.
func (p *Pool) ListPublishedPage(ctx context.Context, offset, limit int) ([]Berita, int64, error) {
	var total int64
	if err := p.gdb.WithContext(ctx).
		Model(&Berita{}).
		Where("status = ?", BeritaStatusPublished).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count published berita: %w", err)
	}

	var rows []Berita
	err := p.gdb.WithContext(ctx).
		Preload("Penulis").
		Where("status = ?", BeritaStatusPublished).
		Order("published_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("query published berita: %w", err)
	}
	return rows, total, nil
}

// ListBeritaAdmin returns every article, newest first.
func (p *Pool) ListBeritaAdmin(ctx context.Context) ([]Berita, error) {
	var rows []Berita
	err := p.gdb.WithContext(ctx).
		Preload("Penulis").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query berita: %w", err)
	}
	return rows, nil
}

func (p *Pool) CreateKomentar(ctx context.Context, komentar *KomentarBerita) error {
	if komentar.ID == "" {
		komentar.ID = uuid.NewString()
	}
	komentar.CreatedAt = globaltime.UTC()
	if komentar.Status == "" {
		komentar.Status = KomentarStatusPending
	}
	if err := p.gdb.WithContext(ctx).Create(komentar).Error; err != nil {
		return fmt.Errorf("insert komentar: %w", err)
	}
	return nil
}

// ListKomentarApproved returns approved comments of one article in creation
// order.
func (p *Pool) ListKomentarApproved(ctx context.Context, beritaID string) ([]KomentarBerita, error) {
	var rows []KomentarBerita
	err := p.gdb.WithContext(ctx).
		Where("berita_id = ? AND status = ?", beritaID, KomentarStatusApproved).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query approved komentar: %w", err)
	}
	return rows, nil
}

// ListKomentarAdmin returns comments newest first, optionally filtered by
// status, with the parent article preloaded for moderation context.
func (p *Pool) ListKomentarAdmin(ctx context.Context, status string) ([]KomentarBerita, error) {
	tx := p.gdb.WithContext(ctx).Preload("Berita")
	if strings.TrimSpace(status) != "" {
		tx = tx.Where("status = ?", status)
	}

	var rows []KomentarBerita
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query komentar: %w", err)
	}
	return rows, nil
}

func (p *Pool) GetKomentarByID(ctx context.Context, id string) (*KomentarBerita, error) {
	var row KomentarBerita
	err := p.gdb.WithContext(ctx).Preload("Berita").First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (p *Pool) SaveKomentarStatus(ctx context.Context, komentar *KomentarBerita) error {
	err := p.gdb.WithContext(ctx).
		Model(&KomentarBerita{}).
		Where("id = ?", komentar.ID).
		Select("status", "approved_at").
		Updates(komentar).Error
	if err != nil {
		return fmt.Errorf("update komentar status: %w", err)
	}
	return nil
}
