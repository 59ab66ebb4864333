package berita

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhtegaralfikri/bbi-backend/internal/db"
	"github.com/muhtegaralfikri/bbi-backend/internal/globaltime"
)

// SubmitKomentar files a reader comment on a published article. Comments
// always start out pending and stay invisible until a moderator approves
// them. Comments on drafts and unknown articles are rejected identically so
// the endpoint leaks no draft existence.
func (s *Service) SubmitKomentar(ctx context.Context, slugValue string, input KomentarInput) (*SubmitKomentarResult, error) {
	row, err := s.store.GetPublishedBySlug(ctx, slugValue)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrBeritaNotFound
		}
		return nil, fmt.Errorf("query berita by slug: %w", err)
	}

	nama := strings.TrimSpace(input.Nama)
	isi := strings.TrimSpace(input.Isi)
	fields := map[string]string{}
	if nama == "" {
		fields["nama"] = "wajib diisi"
	}
	if isi == "" {
		fields["isi"] = "wajib diisi"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	komentar := &db.KomentarBerita{
		BeritaID: row.ID,
		Nama:     nama,
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Isi:      isi,
		Status:   db.KomentarStatusPending,
	}
	if err := s.store.CreateKomentar(ctx, komentar); err != nil {
		return nil, err
	}

	return &SubmitKomentarResult{ID: komentar.ID, Status: komentar.Status}, nil
}

// KomentarPublik lists the approved comments of a published article, oldest
// first.
func (s *Service) KomentarPublik(ctx context.Context, slugValue string) ([]KomentarView, error) {
	row, err := s.store.GetPublishedBySlug(ctx, slugValue)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrBeritaNotFound
		}
		return nil, fmt.Errorf("query berita by slug: %w", err)
	}

	rows, err := s.store.ListKomentarApproved(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("list komentar: %w", err)
	}

	views := make([]KomentarView, 0, len(rows))
	for i := range rows {
		views = append(views, buildKomentarView(&rows[i]))
	}
	return views, nil
}

// FindKomentarAdmin returns the moderation queue, optionally filtered by
// status, newest first.
func (s *Service) FindKomentarAdmin(ctx context.Context, status string) ([]ModerationItem, error) {
	status = strings.TrimSpace(status)
	switch status {
	case "", db.KomentarStatusPending, db.KomentarStatusApproved, db.KomentarStatusRejected:
	default:
		return nil, newValidationError("status", "harus pending, approved, atau rejected")
	}

	rows, err := s.store.ListKomentarAdmin(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list komentar: %w", err)
	}

	items := make([]ModerationItem, 0, len(rows))
	for i := range rows {
		items = append(items, buildModerationItem(&rows[i]))
	}
	return items, nil
}

// UpdateKomentarStatus moves a comment through the moderation state machine.
// Approval stamps approved_at; any move away from approved clears it. All
// transitions between the three states are allowed.
func (s *Service) UpdateKomentarStatus(ctx context.Context, id, status string) (*ModerationItem, error) {
	switch status {
	case db.KomentarStatusPending, db.KomentarStatusApproved, db.KomentarStatusRejected:
	default:
		return nil, newValidationError("status", "harus pending, approved, atau rejected")
	}

	row, err := s.store.GetKomentarByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrKomentarNotFound
		}
		return nil, fmt.Errorf("query komentar: %w", err)
	}

	row.Status = status
	if status == db.KomentarStatusApproved {
		now := globaltime.UTC()
		row.ApprovedAt = &now
	} else {
		row.ApprovedAt = nil
	}

	if err := s.store.SaveKomentarStatus(ctx, row); err != nil {
		return nil, err
	}

	item := buildModerationItem(row)
	return &item, nil
}
