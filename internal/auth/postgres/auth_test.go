package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/o1-spec/techservices-portal/internal/auth"
)

func TestAuthRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AuthRepository Suite")
}

// sqlite variant of the users table; the postgres model carries now()
// defaults sqlite cannot migrate.
type SQLiteUser struct {
	ID            int64      `gorm:"primaryKey"`
	Name          string     `gorm:"column:name;not null"`
	Email         string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash  string     `gorm:"column:password_hash;not null"`
	Role          string     `gorm:"column:role;default:'Employee'"`
	CompanyID     int64      `gorm:"column:company_id;not null"`
	Phone         string     `gorm:"column:phone"`
	Department    string     `gorm:"column:department"`
	Location      string     `gorm:"column:location"`
	Bio           string     `gorm:"column:bio"`
	Avatar        *string    `gorm:"column:avatar"`
	IsActive      bool       `gorm:"column:is_active;default:true"`
	EmailVerified bool       `gorm:"column:email_verified;default:false"`
	LastLogin     *time.Time `gorm:"column:last_login"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string { return "users" }

var _ = Describe("AuthRepository", func() {
	var (
		db   *gorm.DB
		repo *Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&SQLiteUser{})).To(Succeed())

		repo = NewRepository(db)

		Expect(db.Create(&SQLiteUser{
			ID: 1, Name: "Alice Admin", Email: "alice@acme.test",
			PasswordHash: "stored-hash", Role: "Admin", CompanyID: 1, IsActive: true,
		}).Error).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("GetByEmailWithPassword", func() {
		It("should surface the stored hash for credential checks", func() {
			user, err := repo.GetByEmailWithPassword("alice@acme.test")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.PasswordHash).To(Equal("stored-hash"))
			Expect(user.Role).To(Equal(auth.RoleAdmin))
		})

		It("should error for an unknown email", func() {
			_, err := repo.GetByEmailWithPassword("ghost@acme.test")
			Expect(err).To(Equal(gorm.ErrRecordNotFound))
		})
	})

	Describe("GetByID", func() {
		It("should blank the hash on the general read path", func() {
			user, err := repo.GetByID(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.PasswordHash).To(BeEmpty())
			Expect(user.Email).To(Equal("alice@acme.test"))
		})
	})

	Describe("GetByEmail", func() {
		It("should return nil, nil when the email is unknown", func() {
			user, err := repo.GetByEmail("ghost@acme.test")
			Expect(err).NotTo(HaveOccurred())
			Expect(user).To(BeNil())
		})

		It("should return the user without the hash when known", func() {
			user, err := repo.GetByEmail("alice@acme.test")
			Expect(err).NotTo(HaveOccurred())
			Expect(user).NotTo(BeNil())
			Expect(user.PasswordHash).To(BeEmpty())
		})
	})

	Describe("Create", func() {
		It("should persist the principal and backfill the id", func() {
			user := &auth.User{
				Name:       "New User",
				Email:      "new@acme.test",
				Role:       auth.RoleEmployee,
				CompanyID:  1,
				Phone:      "+1 (555) 123-4567",
				Department: "Platform",
				IsActive:   true,
			}

			Expect(repo.Create(user, "fresh-hash")).To(Succeed())
			Expect(user.ID).To(BeNumerically(">", 0))

			var stored SQLiteUser
			Expect(db.First(&stored, user.ID).Error).NotTo(HaveOccurred())
			Expect(stored.PasswordHash).To(Equal("fresh-hash"))
			Expect(stored.Phone).To(Equal("+1 (555) 123-4567"))
			Expect(stored.Department).To(Equal("Platform"))
		})
	})

	Describe("UpdateLastLogin", func() {
		It("should record the timestamp", func() {
			at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
			Expect(repo.UpdateLastLogin(1, at)).To(Succeed())

			var stored SQLiteUser
			Expect(db.First(&stored, 1).Error).NotTo(HaveOccurred())
			Expect(stored.LastLogin).NotTo(BeNil())
			Expect(stored.LastLogin.UTC()).To(BeTemporally("==", at))
		})
	})

	Describe("UpdatePassword", func() {
		It("should replace the stored hash", func() {
			Expect(repo.UpdatePassword("alice@acme.test", "rotated-hash")).To(Succeed())

			var stored SQLiteUser
			Expect(db.First(&stored, 1).Error).NotTo(HaveOccurred())
			Expect(stored.PasswordHash).To(Equal("rotated-hash"))
		})
	})

	Describe("MarkEmailVerified", func() {
		It("should flip the verified flag", func() {
			Expect(repo.MarkEmailVerified("alice@acme.test")).To(Succeed())

			var stored SQLiteUser
			Expect(db.First(&stored, 1).Error).NotTo(HaveOccurred())
			Expect(stored.EmailVerified).To(BeTrue())
		})
	})
})
