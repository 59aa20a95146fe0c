package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestDashboardRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "DashboardRepository Suite")
}

// sqlite variants of the production tables; the postgres models carry
// now() defaults sqlite cannot migrate.
type SQLiteUser struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"column:name;not null"`
	Role      string `gorm:"column:role;default:'Employee'"`
	CompanyID int64  `gorm:"column:company_id;not null"`
}

func (SQLiteUser) TableName() string { return "users" }

type SQLiteProject struct {
	ID         int64  `gorm:"primaryKey"`
	Name       string `gorm:"column:name;not null"`
	Status     string `gorm:"column:status;default:'active'"`
	AssignedTo int64  `gorm:"column:assigned_to;not null"`
	CompanyID  int64  `gorm:"column:company_id;not null"`
}

func (SQLiteProject) TableName() string { return "projects" }

type SQLiteTask struct {
	ID         int64     `gorm:"primaryKey"`
	Title      string    `gorm:"column:title;not null"`
	Status     string    `gorm:"column:status;default:'pending'"`
	AssignedTo int64     `gorm:"column:assigned_to;not null"`
	ProjectID  int64     `gorm:"column:project_id;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (SQLiteTask) TableName() string { return "tasks" }

type SQLiteAnnouncement struct {
	ID        int64  `gorm:"primaryKey"`
	Title     string `gorm:"column:title;not null"`
	CompanyID int64  `gorm:"column:company_id;not null"`
	CreatedBy int64  `gorm:"column:created_by;not null"`
}

func (SQLiteAnnouncement) TableName() string { return "announcements" }

var _ = Describe("DashboardRepository", func() {
	var (
		db   *gorm.DB
		repo *Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&SQLiteUser{}, &SQLiteProject{}, &SQLiteTask{}, &SQLiteAnnouncement{})).To(Succeed())

		repo = NewRepository(db)

		users := []*SQLiteUser{
			{ID: 1, Name: "Alice", Role: "Admin", CompanyID: 1},
			{ID: 2, Name: "Mark", Role: "Manager", CompanyID: 1},
			{ID: 3, Name: "Eve", Role: "Employee", CompanyID: 1},
			{ID: 4, Name: "Bob", Role: "Employee", CompanyID: 1},
			{ID: 5, Name: "Olga", Role: "Employee", CompanyID: 2},
		}
		for _, u := range users {
			Expect(db.Create(u).Error).NotTo(HaveOccurred())
		}

		projects := []*SQLiteProject{
			{ID: 1, Name: "Active One", Status: "active", AssignedTo: 2, CompanyID: 1},
			{ID: 2, Name: "Done", Status: "completed", AssignedTo: 2, CompanyID: 1},
			{ID: 3, Name: "Foreign", Status: "active", AssignedTo: 5, CompanyID: 2},
		}
		for _, p := range projects {
			Expect(db.Create(p).Error).NotTo(HaveOccurred())
		}

		tasks := []*SQLiteTask{
			{Title: "t1", Status: "pending", AssignedTo: 3, ProjectID: 1},
			{Title: "t2", Status: "in_progress", AssignedTo: 3, ProjectID: 1},
			{Title: "t3", Status: "completed", AssignedTo: 3, ProjectID: 1},
			{Title: "t4", Status: "pending", AssignedTo: 4, ProjectID: 2},
			{Title: "t5", Status: "pending", AssignedTo: 5, ProjectID: 3},
		}
		for _, tk := range tasks {
			Expect(db.Create(tk).Error).NotTo(HaveOccurred())
		}

		announcements := []*SQLiteAnnouncement{
			{Title: "a1", CompanyID: 1, CreatedBy: 1},
			{Title: "a2", CompanyID: 1, CreatedBy: 1},
			{Title: "a3", CompanyID: 2, CreatedBy: 5},
		}
		for _, a := range announcements {
			Expect(db.Create(a).Error).NotTo(HaveOccurred())
		}
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("should count employees per company", func() {
		Expect(repo.CountEmployees(1)).To(Equal(4))
		Expect(repo.CountEmployees(2)).To(Equal(1))
	})

	It("should count Employee-role team members only", func() {
		Expect(repo.CountTeamMembers(1)).To(Equal(2))
	})

	It("should count only active projects", func() {
		Expect(repo.CountActiveProjects(1)).To(Equal(1))
	})

	It("should count projects by assignee within the company", func() {
		Expect(repo.CountProjectsByAssignee(1, 2)).To(Equal(2))
		Expect(repo.CountProjectsByAssignee(1, 5)).To(Equal(0))
	})

	It("should count open tasks through the company's projects", func() {
		// pending and in_progress in projects 1 and 2; the foreign task is out
		Expect(repo.CountOpenTasks(1)).To(Equal(3))
	})

	It("should count tasks assigned to the company's employees", func() {
		Expect(repo.CountTeamTasks(1)).To(Equal(4))
	})

	It("should count per-assignee totals, completions and open tasks", func() {
		Expect(repo.CountTasksByAssignee(3)).To(Equal(3))
		Expect(repo.CountCompletedTasksByAssignee(3)).To(Equal(1))
		Expect(repo.CountOpenTasksByAssignee(3)).To(Equal(2))
	})

	It("should count announcements per company", func() {
		Expect(repo.CountAnnouncements(1)).To(Equal(2))
		Expect(repo.CountAnnouncements(2)).To(Equal(1))
	})
})
