package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/o1-spec/techservices-portal/internal/announcement"
)

func TestAnnouncementRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AnnouncementRepository Suite")
}

// sqlite variants of the production tables; the postgres models carry
// now() defaults sqlite cannot migrate.
type SQLiteAnnouncement struct {
	ID        int64     `gorm:"primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Content   string    `gorm:"column:content;not null"`
	Type      string    `gorm:"column:type;default:'general'"`
	Priority  string    `gorm:"column:priority;default:'medium'"`
	CreatedBy int64     `gorm:"column:created_by;not null"`
	CompanyID int64     `gorm:"column:company_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteAnnouncement) TableName() string { return "announcements" }

type SQLiteUser struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;not null"`
}

func (SQLiteUser) TableName() string { return "users" }

var _ = Describe("AnnouncementRepository", func() {
	var (
		db   *gorm.DB
		repo *Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&SQLiteAnnouncement{}, &SQLiteUser{})).To(Succeed())

		repo = NewRepository(db)

		Expect(db.Create(&SQLiteUser{ID: 1, Name: "Alice Admin"}).Error).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("ListByCompany", func() {
		It("should return company announcements newest first with author names", func() {
			base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			rows := []*SQLiteAnnouncement{
				{Title: "Older", Content: "c", Type: "general", Priority: "low", CreatedBy: 1, CompanyID: 1, CreatedAt: base},
				{Title: "Newer", Content: "c", Type: "urgent", Priority: "high", CreatedBy: 1, CompanyID: 1, CreatedAt: base.Add(24 * time.Hour)},
				{Title: "Foreign", Content: "c", Type: "general", Priority: "low", CreatedBy: 1, CompanyID: 2, CreatedAt: base},
			}
			for _, a := range rows {
				Expect(db.Create(a).Error).NotTo(HaveOccurred())
			}

			views, err := repo.ListByCompany(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(2))
			Expect(views[0].Title).To(Equal("Newer"))
			Expect(views[0].Author).To(Equal("Alice Admin"))
			Expect(views[0].Date).To(Equal("2026-03-02"))
			Expect(views[1].Title).To(Equal("Older"))
		})

		It("should label a vanished author Unknown", func() {
			Expect(db.Create(&SQLiteAnnouncement{
				Title: "Ghost", Content: "c", Type: "general", Priority: "low",
				CreatedBy: 99, CompanyID: 1,
			}).Error).NotTo(HaveOccurred())

			views, err := repo.ListByCompany(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(views[0].Author).To(Equal("Unknown"))
		})
	})

	Describe("GetByID", func() {
		It("should treat another company's announcement as absent", func() {
			created := &SQLiteAnnouncement{Title: "Scoped", Content: "c", CreatedBy: 1, CompanyID: 1}
			Expect(db.Create(created).Error).NotTo(HaveOccurred())

			found, err := repo.GetByID(created.ID, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Title).To(Equal("Scoped"))

			_, err = repo.GetByID(created.ID, 2)
			Expect(err).To(Equal(gorm.ErrRecordNotFound))
		})
	})

	Describe("Create", func() {
		It("should persist and backfill the id", func() {
			a := &announcement.Announcement{
				Title:     "Fresh",
				Content:   "content",
				Type:      announcement.TypeGeneral,
				Priority:  announcement.PriorityMedium,
				CreatedBy: 1,
				CompanyID: 1,
			}

			Expect(repo.Create(a)).To(Succeed())
			Expect(a.ID).To(BeNumerically(">", 0))
		})
	})

	Describe("Update and Delete", func() {
		It("should scope both writes by company", func() {
			created := &SQLiteAnnouncement{Title: "Original", Content: "c", CreatedBy: 1, CompanyID: 1}
			Expect(db.Create(created).Error).NotTo(HaveOccurred())

			Expect(repo.Update(created.ID, 2, "Tampered", "c", "urgent", "high")).To(Succeed())
			var stored SQLiteAnnouncement
			Expect(db.First(&stored, created.ID).Error).NotTo(HaveOccurred())
			Expect(stored.Title).To(Equal("Original"))

			Expect(repo.Update(created.ID, 1, "Edited", "c2", "urgent", "high")).To(Succeed())
			Expect(db.First(&stored, created.ID).Error).NotTo(HaveOccurred())
			Expect(stored.Title).To(Equal("Edited"))
			Expect(stored.Priority).To(Equal("high"))

			Expect(repo.Delete(created.ID, 2)).To(Succeed())
			Expect(db.First(&stored, created.ID).Error).NotTo(HaveOccurred())

			Expect(repo.Delete(created.ID, 1)).To(Succeed())
			Expect(db.First(&stored, created.ID).Error).To(Equal(gorm.ErrRecordNotFound))
		})
	})
})
