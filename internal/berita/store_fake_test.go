package berita

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/muhtegaralfikri/bbi-backend/internal/db"
	"github.com/muhtegaralfikri/bbi-backend/internal/globaltime"
)

// fakeStore keeps everything in maps and counts repository round trips so
// cache behavior can be asserted.
type fakeStore struct {
	mu sync.Mutex

	berita   map[string]*db.Berita
	komentar map[string]*db.KomentarBerita
	nextID   int

	listPublishedCalls int
	publishedSlugCalls int
	failCreate         error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		berita:   map[string]*db.Berita{},
		komentar: map[string]*db.KomentarBerita{},
	}
}

func (f *fakeStore) newID() string {
	f.nextID++
	return "id-" + strconv.Itoa(f.nextID)
}

func copyBerita(row *db.Berita) *db.Berita {
	clone := *row
	clone.Galeri = append([]db.GaleriBerita(nil), row.Galeri...)
	clone.Komentar = append([]db.KomentarBerita(nil), row.Komentar...)
	return &clone
}

func (f *fakeStore) CreateBerita(_ context.Context, row *db.Berita) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return f.failCreate
	}
	row.ID = f.newID()
	row.CreatedAt = globaltime.UTC()
	for i := range row.Galeri {
		row.Galeri[i].ID = f.newID()
		row.Galeri[i].BeritaID = row.ID
		row.Galeri[i].Urutan = i
	}
	f.berita[row.ID] = copyBerita(row)
	return nil
}

func (f *fakeStore) SaveBerita(_ context.Context, row *db.Berita) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.berita[row.ID]
	if !ok {
		return db.ErrNoRows
	}
	clone := copyBerita(row)
	clone.Galeri = stored.Galeri
	clone.Komentar = stored.Komentar
	f.berita[row.ID] = clone
	return nil
}

func (f *fakeStore) ReplaceGaleri(_ context.Context, beritaID string, imageURLs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.berita[beritaID]
	if !ok {
		return db.ErrNoRows
	}
	stored.Galeri = nil
	for i, imageURL := range imageURLs {
		stored.Galeri = append(stored.Galeri, db.GaleriBerita{
			ID:       f.newID(),
			BeritaID: beritaID,
			ImageURL: imageURL,
			Urutan:   i,
		})
	}
	return nil
}

func (f *fakeStore) DeleteBerita(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.berita[id]; !ok {
		return db.ErrNoRows
	}
	delete(f.berita, id)
	for komentarID, komentar := range f.komentar {
		if komentar.BeritaID == id {
			delete(f.komentar, komentarID)
		}
	}
	return nil
}

func (f *fakeStore) GetBeritaByID(_ context.Context, id string) (*db.Berita, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.berita[id]
	if !ok {
		return nil, db.ErrNoRows
	}
	return copyBerita(row), nil
}

func (f *fakeStore) GetBeritaBySlug(_ context.Context, slug string) (*db.Berita, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.berita {
		if row.Slug == slug {
			return copyBerita(row), nil
		}
	}
	return nil, db.ErrNoRows
}

func (f *fakeStore) GetPublishedBySlug(_ context.Context, slug string) (*db.Berita, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publishedSlugCalls++
	for _, row := range f.berita {
		if row.Slug == slug && row.Status == db.BeritaStatusPublished {
			clone := copyBerita(row)
			clone.Komentar = nil
			for _, komentar := range f.komentar {
				if komentar.BeritaID == row.ID && komentar.Status == db.KomentarStatusApproved {
					clone.Komentar = append(clone.Komentar, *komentar)
				}
			}
			return clone, nil
		}
	}
	return nil, db.ErrNoRows
}

func (f *fakeStore) ListPublishedPage(_ context.Context, offset, limit int) ([]db.Berita, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listPublishedCalls++
	var published []db.Berita
	for _, row := range f.berita {
		if row.Status == db.BeritaStatusPublished {
			published = append(published, *copyBerita(row))
		}
	}
	sort.Slice(published, func(i, j int) bool {
		return published[i].PublishedAt.After(*published[j].PublishedAt)
	})
	total := int64(len(published))
	if offset >= len(published) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(published) {
		end = len(published)
	}
	return published[offset:end], total, nil
}

func (f *fakeStore) ListBeritaAdmin(_ context.Context) ([]db.Berita, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []db.Berita
	for _, row := range f.berita {
		rows = append(rows, *copyBerita(row))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return rows, nil
}

func (f *fakeStore) CreateKomentar(_ context.Context, row *db.KomentarBerita) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row.ID = f.newID()
	row.CreatedAt = globaltime.UTC()
	clone := *row
	f.komentar[row.ID] = &clone
	return nil
}

func (f *fakeStore) ListKomentarApproved(_ context.Context, beritaID string) ([]db.KomentarBerita, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []db.KomentarBerita
	for _, row := range f.komentar {
		if row.BeritaID == beritaID && row.Status == db.KomentarStatusApproved {
			rows = append(rows, *row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

func (f *fakeStore) ListKomentarAdmin(_ context.Context, status string) ([]db.KomentarBerita, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []db.KomentarBerita
	for _, row := range f.komentar {
		if status != "" && row.Status != status {
			continue
		}
		clone := *row
		if parent, ok := f.berita[row.BeritaID]; ok {
			clone.Berita = copyBerita(parent)
		}
		rows = append(rows, clone)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return rows, nil
}

func (f *fakeStore) GetKomentarByID(_ context.Context, id string) (*db.KomentarBerita, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.komentar[id]
	if !ok {
		return nil, db.ErrNoRows
	}
	clone := *row
	return &clone, nil
}

func (f *fakeStore) SaveKomentarStatus(_ context.Context, row *db.KomentarBerita) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.komentar[row.ID]
	if !ok {
		return db.ErrNoRows
	}
	stored.Status = row.Status
	stored.ApprovedAt = row.ApprovedAt
	return nil
}
