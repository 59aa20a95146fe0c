package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCompanyRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CompanyRepository Suite")
}

// sqlite variant of the companies table; the postgres model carries now()
// defaults sqlite cannot migrate.
type SQLiteCompany struct {
	ID               int64     `gorm:"primaryKey"`
	Name             string    `gorm:"column:name;uniqueIndex;not null"`
	SubscriptionPlan string    `gorm:"column:subscription_plan;default:'free'"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (SQLiteCompany) TableName() string { return "companies" }

var _ = Describe("CompanyRepository", func() {
	var (
		db   *gorm.DB
		repo *Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&SQLiteCompany{})).To(Succeed())

		repo = NewRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("FindOrCreate", func() {
		It("should provision an unseen company on the free plan", func() {
			id, err := repo.FindOrCreate("Acme Corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(BeNumerically(">", 0))

			var stored SQLiteCompany
			Expect(db.First(&stored, id).Error).NotTo(HaveOccurred())
			Expect(stored.SubscriptionPlan).To(Equal("free"))
		})

		It("should converge repeated lookups on the same row", func() {
			first, err := repo.FindOrCreate("Acme Corp")
			Expect(err).NotTo(HaveOccurred())

			second, err := repo.FindOrCreate("Acme Corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))

			var count int64
			Expect(db.Model(&SQLiteCompany{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("GetByID", func() {
		It("should load a provisioned company", func() {
			id, err := repo.FindOrCreate("Acme Corp")
			Expect(err).NotTo(HaveOccurred())

			c, err := repo.GetByID(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Name).To(Equal("Acme Corp"))
		})

		It("should error for an unknown id", func() {
			_, err := repo.GetByID(404)
			Expect(err).To(Equal(gorm.ErrRecordNotFound))
		})
	})
})
