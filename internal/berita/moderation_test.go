package berita

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/muhtegaralfikri/bbi-backend/internal/db"
	"github.com/muhtegaralfikri/bbi-backend/internal/globaltime"
)

func submitTestKomentar(t *testing.T, svc *Service, slug string) *SubmitKomentarResult {
	t.Helper()
	result, err := svc.SubmitKomentar(context.Background(), slug, KomentarInput{
		Nama:  "Budi",
		Email: "budi@example.com",
		Isi:   "Mantap sekali",
	})
	if err != nil {
		t.Fatalf("SubmitKomentar: %v", err)
	}
	return result
}

func TestSubmitKomentarStartsPending(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store, nil)

	row := mustCreate(t, svc, CreateInput{Judul: "Berita Umum", Status: db.BeritaStatusPublished})

	result, err := svc.SubmitKomentar(context.Background(), row.Slug, KomentarInput{
		Nama:  "  Siti  ",
		Email: "  SITI@Example.COM ",
		Isi:   "  komentar pertama  ",
	})
	if err != nil {
		t.Fatalf("SubmitKomentar: %v", err)
	}
	if result.Status != db.KomentarStatusPending {
		t.Fatalf("status = %q, want pending", result.Status)
	}

	stored, err := store.GetKomentarByID(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Nama != "Siti" || stored.Isi != "komentar pertama" {
		t.Fatalf("stored = %+v, want trimmed nama and isi", stored)
	}
	if stored.Email != "siti@example.com" {
		t.Fatalf("email = %q, want lowercased", stored.Email)
	}
	if stored.ApprovedAt != nil {
		t.Fatalf("approved_at = %v, want nil on submission", stored.ApprovedAt)
	}
}

func TestSubmitKomentarRejectsBlankFields(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store, nil)
	row := mustCreate(t, svc, CreateInput{Judul: "Berita Umum", Status: db.BeritaStatusPublished})

	_, err := svc.SubmitKomentar(context.Background(), row.Slug, KomentarInput{Nama: "   ", Isi: "\t"})
	validation, ok := AsValidation(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}
	if _, ok := validation.Fields["nama"]; !ok {
		t.Fatalf("fields = %v, want nama flagged", validation.Fields)
	}
	if _, ok := validation.Fields["isi"]; !ok {
		t.Fatalf("fields = %v, want isi flagged", validation.Fields)
	}
}

func TestSubmitKomentarOnDraftLooksLikeMissing(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store, nil)

	draft := mustCreate(t, svc, CreateInput{Judul: "Belum Terbit"})

	_, err := svc.SubmitKomentar(context.Background(), draft.Slug, KomentarInput{Nama: "Budi", Isi: "hai"})
	if !errors.Is(err, ErrBeritaNotFound) {
		t.Fatalf("draft err = %v, want ErrBeritaNotFound", err)
	}
	_, err = svc.SubmitKomentar(context.Background(), "tidak-ada", KomentarInput{Nama: "Budi", Isi: "hai"})
	if !errors.Is(err, ErrBeritaNotFound) {
		t.Fatalf("missing err = %v, want ErrBeritaNotFound", err)
	}
}

func TestModerationApproveStampsTime(t *testing.T) {
	globaltime.SetMockTime(time.Date(2026, 7, 9, 10, 0, 0, 0, time.UTC))
	defer globaltime.ResetTime()

	store := newFakeStore()
	svc, _ := newTestService(t, store, nil)
	row := mustCreate(t, svc, CreateInput{Judul: "Berita Moderasi", Status: db.BeritaStatusPublished})
	submitted := submitTestKomentar(t, svc, row.Slug)

	approved, err := svc.UpdateKomentarStatus(context.Background(), submitted.ID, db.KomentarStatusApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.ApprovedAt == nil || !approved.ApprovedAt.Equal(globaltime.UTC()) {
		t.Fatalf("approved_at = %v, want mocked now", approved.ApprovedAt)
	}

	// Any move away from approved clears the stamp again.
	rejected, err := svc.UpdateKomentarStatus(context.Background(), submitted.ID, db.KomentarStatusRejected)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.ApprovedAt != nil {
		t.Fatalf("approved_at = %v, want cleared on reject", rejected.ApprovedAt)
	}
}

func TestModerationRejectsUnknownStatusAndComment(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store, nil)

	if _, err := svc.UpdateKomentarStatus(context.Background(), "whatever", "archived"); err == nil {
		t.Fatalf("want validation error for unknown status")
	} else if _, ok := AsValidation(err); !ok {
		t.Fatalf("err = %v, want validation error", err)
	}

	_, err := svc.UpdateKomentarStatus(context.Background(), "missing", db.KomentarStatusApproved)
	if !errors.Is(err, ErrKomentarNotFound) {
		t.Fatalf("err = %v, want ErrKomentarNotFound", err)
	}
}

func TestKomentarPublikShowsApprovedOnly(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store, nil)
	ctx := context.Background()

	row := mustCreate(t, svc, CreateInput{Judul: "Berita Ramai", Status: db.BeritaStatusPublished})
	first := submitTestKomentar(t, svc, row.Slug)
	submitTestKomentar(t, svc, row.Slug)
	third := submitTestKomentar(t, svc, row.Slug)

	for _, id := range []string{first.ID, third.ID} {
		if _, err := svc.UpdateKomentarStatus(ctx, id, db.KomentarStatusApproved); err != nil {
			t.Fatalf("approve %s: %v", id, err)
		}
	}

	visible, err := svc.KomentarPublik(ctx, row.Slug)
	if err != nil {
		t.Fatalf("KomentarPublik: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("visible = %d comments, want 2 approved", len(visible))
	}
	for _, komentar := range visible {
		if komentar.ID != first.ID && komentar.ID != third.ID {
			t.Fatalf("unexpected comment %q in public list", komentar.ID)
		}
	}
}

func TestFindKomentarAdminFilter(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store, nil)
	ctx := context.Background()

	row := mustCreate(t, svc, CreateInput{Judul: "Berita Antrian", Status: db.BeritaStatusPublished})
	pending := submitTestKomentar(t, svc, row.Slug)
	approvedSubmission := submitTestKomentar(t, svc, row.Slug)
	if _, err := svc.UpdateKomentarStatus(ctx, approvedSubmission.ID, db.KomentarStatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}

	all, err := svc.FindKomentarAdmin(ctx, "")
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d items, want 2", len(all))
	}
	if all[0].Berita == nil || all[0].Berita.Slug != row.Slug {
		t.Fatalf("moderation item missing parent article: %+v", all[0])
	}

	onlyPending, err := svc.FindKomentarAdmin(ctx, db.KomentarStatusPending)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(onlyPending) != 1 || onlyPending[0].ID != pending.ID {
		t.Fatalf("pending = %+v, want the single pending comment", onlyPending)
	}

	if _, err := svc.FindKomentarAdmin(ctx, "spam"); err == nil {
		t.Fatalf("want validation error for unknown filter")
	}
}
