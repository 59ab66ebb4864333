package db

import "time"

const (
	BeritaStatusDraft     = "draft"
	BeritaStatusPublished = "published"

	KomentarStatusPending  = "pending"
	KomentarStatusApproved = "approved"
	KomentarStatusRejected = "rejected"
)

// InfoPerusahaanID is the fixed primary key of the singleton contact record.
const InfoPerusahaanID = 1

// Admin maps admins.
type Admin struct {
	ID           string     `gorm:"column:id;type:uuid;primaryKey"`
	NamaLengkap  string     `gorm:"column:nama_lengkap;type:text;not null"`
	Email        string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;type:text;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at;type:timestamptz"`
	CreatedAt    time.Time  `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (Admin) TableName() string { return "admins" }

// AdminSession maps admin_sessions.
type AdminSession struct {
	SessionID  string    `gorm:"column:session_id;type:uuid;primaryKey"`
	AdminID    string    `gorm:"column:admin_id;type:uuid;not null;index"`
	ExpiresAt  time.Time `gorm:"column:expires_at;type:timestamptz;not null"`
	LastSeenAt time.Time `gorm:"column:last_seen_at;type:timestamptz;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz;not null"`
}

func (AdminSession) TableName() string { return "admin_sessions" }

// Berita maps berita.
type Berita struct {
	ID             string     `gorm:"column:id;type:uuid;primaryKey"`
	Judul          string     `gorm:"column:judul;type:text;not null"`
	JudulEn        *string    `gorm:"column:judul_en;type:text"`
	Ringkasan      string     `gorm:"column:ringkasan;type:text;not null"`
	RingkasanEn    *string    `gorm:"column:ringkasan_en;type:text"`
	IsiKonten      string     `gorm:"column:isi_konten;type:text;not null"`
	IsiKontenEn    *string    `gorm:"column:isi_konten_en;type:text"`
	Slug           string     `gorm:"column:slug;type:text;not null;uniqueIndex"`
	GambarUtamaURL string     `gorm:"column:gambar_utama_url;type:text;not null"`
	Status         string     `gorm:"column:status;type:text;not null;default:draft"`
	PublishedAt    *time.Time `gorm:"column:published_at;type:timestamptz"`
	PenulisID      string     `gorm:"column:penulis_id;type:uuid;not null;index"`
	CreatedAt      time.Time  `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;type:timestamptz;not null"`

	Penulis  *Admin           `gorm:"foreignKey:PenulisID"`
	Galeri   []GaleriBerita   `gorm:"foreignKey:BeritaID;constraint:OnDelete:CASCADE"`
	Komentar []KomentarBerita `gorm:"foreignKey:BeritaID;constraint:OnDelete:CASCADE"`
}

func (Berita) TableName() string { return "berita" }

// GaleriBerita maps galeri_berita, the ordered image gallery of one article.
type GaleriBerita struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	BeritaID  string    `gorm:"column:berita_id;type:uuid;not null;index"`
	ImageURL  string    `gorm:"column:image_url;type:text;not null"`
	Urutan    int       `gorm:"column:urutan;type:integer;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null"`
}

func (GaleriBerita) TableName() string { return "galeri_berita" }

// KomentarBerita maps komentar_berita.
type KomentarBerita struct {
	ID         string     `gorm:"column:id;type:uuid;primaryKey"`
	BeritaID   string     `gorm:"column:berita_id;type:uuid;not null;index"`
	Nama       string     `gorm:"column:nama;type:text;not null"`
	Email      string     `gorm:"column:email;type:text;not null"`
	Isi        string     `gorm:"column:isi;type:text;not null"`
	Status     string     `gorm:"column:status;type:text;not null;default:pending"`
	ApprovedAt *time.Time `gorm:"column:approved_at;type:timestamptz"`
	CreatedAt  time.Time  `gorm:"column:created_at;type:timestamptz;not null"`

	Berita *Berita `gorm:"foreignKey:BeritaID"`
}

func (KomentarBerita) TableName() string { return "komentar_berita" }

// InfoPerusahaan maps the singleton company-contact record.
type InfoPerusahaan struct {
	ID              int       `gorm:"column:id;primaryKey"`
	AlamatKantor    string    `gorm:"column:alamat_kantor;type:text;not null"`
	NoHP            string    `gorm:"column:no_hp;type:text;not null"`
	Email           string    `gorm:"column:email;type:text;not null"`
	GoogleMapsEmbed string    `gorm:"column:google_maps_embed;type:text;not null"`
	UpdatedAt       time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (InfoPerusahaan) TableName() string { return "info_perusahaan" }

// InfoCabang maps info_cabang, one row per branch office.
type InfoCabang struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	Nama      string    `gorm:"column:nama;type:text;not null"`
	Alamat    string    `gorm:"column:alamat;type:text;not null"`
	NoTelp    string    `gorm:"column:no_telp;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (InfoCabang) TableName() string { return "info_cabang" }

func autoMigrateModels() []any {
	return []any{
		&Admin{},
		&AdminSession{},
		&Berita{},
		&GaleriBerita{},
		&KomentarBerita{},
		&InfoPerusahaan{},
		&InfoCabang{},
	}
}
