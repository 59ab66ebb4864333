// Package berita implements the publication pipeline: slug assignment and
// uniqueness, the read-through content cache, translation enrichment, and the
// publish/draft transition rules.
package berita

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/muhtegaralfikri/bbi-backend/internal/cache"
	"github.com/muhtegaralfikri/bbi-backend/internal/db"
	"github.com/muhtegaralfikri/bbi-backend/internal/globaltime"
	"github.com/muhtegaralfikri/bbi-backend/internal/slug"
	"github.com/muhtegaralfikri/bbi-backend/internal/translation"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	maxLimit     = 100
)

// Store is the persistence boundary of the publication pipeline. *db.Pool
// implements it; tests substitute fakes.
type Store interface {
	CreateBerita(ctx context.Context, berita *db.Berita) error
	SaveBerita(ctx context.Context, berita *db.Berita) error
	ReplaceGaleri(ctx context.Context, beritaID string, imageURLs []string) error
	DeleteBerita(ctx context.Context, id string) error
	GetBeritaByID(ctx context.Context, id string) (*db.Berita, error)
	GetBeritaBySlug(ctx context.Context, slug string) (*db.Berita, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*db.Berita, error)
	ListPublishedPage(ctx context.Context, offset, limit int) ([]db.Berita, int64, error)
	ListBeritaAdmin(ctx context.Context) ([]db.Berita, error)

	CreateKomentar(ctx context.Context, komentar *db.KomentarBerita) error
	ListKomentarApproved(ctx context.Context, beritaID string) ([]db.KomentarBerita, error)
	ListKomentarAdmin(ctx context.Context, status string) ([]db.KomentarBerita, error)
	GetKomentarByID(ctx context.Context, id string) (*db.KomentarBerita, error)
	SaveKomentarStatus(ctx context.Context, komentar *db.KomentarBerita) error
}

// Translator enriches the English-language fields. It never fails: fields
// whose translation did not succeed come back as the original text.
type Translator interface {
	EnrichFields(ctx context.Context, in translation.Fields, targetLang string) translation.Fields
}

type Options struct {
	CacheTTL   time.Duration
	TargetLang string
}

// Service is the control center of the content pipeline.
type Service struct {
	store      Store
	cache      cache.Cache
	translator Translator
	logger     zerolog.Logger
	cacheTTL   time.Duration
	targetLang string
}

func NewService(store Store, contentCache cache.Cache, translator Translator, logger zerolog.Logger, opts Options) *Service {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	target := strings.TrimSpace(opts.TargetLang)
	if target == "" {
		target = "en"
	}
	return &Service{
		store:      store,
		cache:      contentCache,
		translator: translator,
		logger:     logger,
		cacheTTL:   ttl,
		targetLang: target,
	}
}

// --- public reads -----------------------------------------------------------

// FindAllPublic returns one page of published articles. The result is cached
// under the page/limit pair; listing entries are never invalidated on writes
// and rely on TTL expiry alone.
func (s *Service) FindAllPublic(ctx context.Context, page, limit int) (*ListResult, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	cacheKey := listCacheKey(page, limit)
	if payload := s.cacheGet(ctx, cacheKey); payload != nil {
		var cached ListResult
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	rows, total, err := s.store.ListPublishedPage(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list published berita: %w", err)
	}

	result := &ListResult{
		Data: make([]ListItem, 0, len(rows)),
		Meta: Meta{
			Total:    total,
			Page:     page,
			Limit:    limit,
			LastPage: lastPage(total, limit),
		},
	}
	for i := range rows {
		result.Data = append(result.Data, buildListItem(&rows[i]))
	}

	s.cacheSet(ctx, cacheKey, result)
	return result, nil
}

// FindOnePublic returns the published article behind slug with its gallery
// and approved comments. Unknown and draft slugs are indistinguishable.
func (s *Service) FindOnePublic(ctx context.Context, slugValue string) (*Detail, error) {
	cacheKey := detailCacheKey(slugValue)
	if payload := s.cacheGet(ctx, cacheKey); payload != nil {
		var cached Detail
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	row, err := s.store.GetPublishedBySlug(ctx, slugValue)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrBeritaNotFound
		}
		return nil, fmt.Errorf("query berita by slug: %w", err)
	}

	detail := buildDetail(row)
	s.cacheSet(ctx, cacheKey, detail)
	return detail, nil
}

// --- admin reads ------------------------------------------------------------

func (s *Service) FindAllAdmin(ctx context.Context) ([]db.Berita, error) {
	rows, err := s.store.ListBeritaAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("list berita: %w", err)
	}
	return rows, nil
}

func (s *Service) FindOneAdmin(ctx context.Context, id string) (*db.Berita, error) {
	row, err := s.store.GetBeritaByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrBeritaNotFound
		}
		return nil, fmt.Errorf("query berita: %w", err)
	}
	return row, nil
}

// --- writes -----------------------------------------------------------------

// Create derives the slug, enforces its uniqueness, applies the publication
// transition, and (for published articles) enriches missing English fields
// before persisting.
func (s *Service) Create(ctx context.Context, input CreateInput, adminID string) (*db.Berita, error) {
	judul := strings.TrimSpace(input.Judul)
	if judul == "" {
		return nil, newValidationError("judul", "wajib diisi")
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = db.BeritaStatusDraft
	}
	if status != db.BeritaStatusDraft && status != db.BeritaStatusPublished {
		return nil, newValidationError("status", "harus draft atau published")
	}

	slugValue := slug.Slugify(judul)
	if slugValue == "" {
		return nil, newValidationError("judul", "tidak menghasilkan slug yang valid")
	}
	if err := s.ensureSlugFree(ctx, slugValue, ""); err != nil {
		return nil, err
	}

	row := &db.Berita{
		Judul:          judul,
		JudulEn:        optionalText(input.JudulEn),
		Ringkasan:      input.Ringkasan,
		RingkasanEn:    optionalText(input.RingkasanEn),
		IsiKonten:      input.IsiKonten,
		IsiKontenEn:    optionalText(input.IsiKontenEn),
		Slug:           slugValue,
		GambarUtamaURL: input.GambarUtamaURL,
		Status:         status,
		PenulisID:      adminID,
	}
	if status == db.BeritaStatusPublished {
		now := globaltime.UTC()
		row.PublishedAt = &now
		s.enrichMissing(ctx, row)
	}
	for _, imageURL := range input.Galeri {
		row.Galeri = append(row.Galeri, db.GaleriBerita{ImageURL: imageURL})
	}

	if err := s.store.CreateBerita(ctx, row); err != nil {
		return nil, err
	}

	s.cacheDelete(ctx, detailCacheKey(slugValue))
	return row, nil
}

// Update applies a partial update. A title change re-derives the slug and
// re-checks uniqueness against other articles; content changes on a
// published article re-run enrichment for the affected fields.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*db.Berita, error) {
	row, err := s.store.GetBeritaByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrBeritaNotFound
		}
		return nil, fmt.Errorf("query berita: %w", err)
	}

	oldSlug := row.Slug
	judulChanged := false
	ringkasanChanged := false
	isiChanged := false

	if input.Judul != nil {
		judul := strings.TrimSpace(*input.Judul)
		if judul == "" {
			return nil, newValidationError("judul", "wajib diisi")
		}
		newSlug := slug.Slugify(judul)
		if newSlug == "" {
			return nil, newValidationError("judul", "tidak menghasilkan slug yang valid")
		}
		if newSlug != row.Slug {
			if err := s.ensureSlugFree(ctx, newSlug, row.ID); err != nil {
				return nil, err
			}
			row.Slug = newSlug
		}
		if judul != row.Judul {
			judulChanged = true
		}
		row.Judul = judul
	}
	if input.Ringkasan != nil {
		if *input.Ringkasan != row.Ringkasan {
			ringkasanChanged = true
		}
		row.Ringkasan = *input.Ringkasan
	}
	if input.IsiKonten != nil {
		if *input.IsiKonten != row.IsiKonten {
			isiChanged = true
		}
		row.IsiKonten = *input.IsiKonten
	}
	if input.GambarUtamaURL != nil {
		row.GambarUtamaURL = *input.GambarUtamaURL
	}

	// Manually supplied translations always win over enrichment.
	manualJudulEn := applyOptional(&row.JudulEn, input.JudulEn)
	manualRingkasanEn := applyOptional(&row.RingkasanEn, input.RingkasanEn)
	manualIsiEn := applyOptional(&row.IsiKontenEn, input.IsiKontenEn)

	if input.Status != nil {
		newStatus := strings.TrimSpace(*input.Status)
		switch newStatus {
		case db.BeritaStatusDraft, db.BeritaStatusPublished:
		default:
			return nil, newValidationError("status", "harus draft atau published")
		}
		if row.Status == db.BeritaStatusDraft && newStatus == db.BeritaStatusPublished {
			now := globaltime.UTC()
			row.PublishedAt = &now
		}
		if row.Status == db.BeritaStatusPublished && newStatus == db.BeritaStatusDraft {
			row.PublishedAt = nil
		}
		row.Status = newStatus
	}

	if row.Status == db.BeritaStatusPublished {
		if judulChanged && !manualJudulEn {
			row.JudulEn = nil
		}
		if ringkasanChanged && !manualRingkasanEn {
			row.RingkasanEn = nil
		}
		if isiChanged && !manualIsiEn {
			row.IsiKontenEn = nil
		}
		s.enrichMissing(ctx, row)
	}

	if err := s.store.SaveBerita(ctx, row); err != nil {
		return nil, err
	}
	if input.GaleriSet {
		if err := s.store.ReplaceGaleri(ctx, row.ID, input.Galeri); err != nil {
			return nil, err
		}
	}

	s.cacheDelete(ctx, detailCacheKey(oldSlug))
	if row.Slug != oldSlug {
		s.cacheDelete(ctx, detailCacheKey(row.Slug))
	}
	return row, nil
}

// Delete removes the article with its comments and gallery.
func (s *Service) Delete(ctx context.Context, id string) error {
	row, err := s.store.GetBeritaByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrBeritaNotFound
		}
		return fmt.Errorf("query berita: %w", err)
	}

	if err := s.store.DeleteBerita(ctx, id); err != nil {
		if db.IsNoRows(err) {
			return ErrBeritaNotFound
		}
		return err
	}

	s.cacheDelete(ctx, detailCacheKey(row.Slug))
	return nil
}

// --- internals --------------------------------------------------------------

// ensureSlugFree returns a conflict error when candidate belongs to an
// article other than selfID. The check-then-write pair is not atomic; a rare
// racing duplicate surfaces as a database uniqueness error instead.
func (s *Service) ensureSlugFree(ctx context.Context, candidate, selfID string) error {
	owner, err := s.store.GetBeritaBySlug(ctx, candidate)
	if err != nil {
		if db.IsNoRows(err) {
			return nil
		}
		return fmt.Errorf("check slug uniqueness: %w", err)
	}
	if owner.ID == selfID {
		return nil
	}
	return slugConflict()
}

// enrichMissing fills English fields that are still nil. Enrichment never
// fails: on provider breakdown the fields get the original text, which also
// prevents re-attempts on later reads.
func (s *Service) enrichMissing(ctx context.Context, row *db.Berita) {
	if s.translator == nil {
		return
	}

	in := translation.Fields{}
	if row.JudulEn == nil {
		in.Judul = row.Judul
	}
	if row.RingkasanEn == nil {
		in.Ringkasan = row.Ringkasan
	}
	if row.IsiKontenEn == nil {
		in.IsiKonten = row.IsiKonten
	}
	if in.Judul == "" && in.Ringkasan == "" && in.IsiKonten == "" {
		return
	}

	out := s.translator.EnrichFields(ctx, in, s.targetLang)
	if row.JudulEn == nil && out.Judul != "" {
		row.JudulEn = &out.Judul
	}
	if row.RingkasanEn == nil && out.Ringkasan != "" {
		row.RingkasanEn = &out.Ringkasan
	}
	if row.IsiKontenEn == nil && out.IsiKonten != "" {
		row.IsiKontenEn = &out.IsiKonten
	}
}

func (s *Service) cacheGet(ctx context.Context, key string) []byte {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		if !cache.IsMiss(err) {
			s.logger.Debug().Err(err).Str("key", key).Msg("cache get failed, treating as miss")
		}
		return nil
	}
	s.logger.Debug().Str("key", key).Msg("cache hit")
	return payload
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (s *Service) cacheDelete(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("cache delete failed")
	}
}

func listCacheKey(page, limit int) string {
	return fmt.Sprintf("berita:public:%d:%d", page, limit)
}

func detailCacheKey(slugValue string) string {
	return "berita:public:" + slugValue
}

func lastPage(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func optionalText(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// applyOptional assigns an optional update into dst and reports whether the
// caller supplied the field at all.
func applyOptional(dst **string, src *string) bool {
	if src == nil {
		return false
	}
	*dst = optionalText(*src)
	return true
}
