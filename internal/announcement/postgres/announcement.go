package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/o1-spec/techservices-portal/internal/announcement"
	annmodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/announcement"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListByCompany(companyID int64) ([]*announcement.View, error) {
	type row struct {
		ID        int64
		Title     string
		Content   string
		Type      string
		Priority  string
		CreatedAt time.Time
		Author    string
	}

	var rows []row
	err := r.db.Table("announcements").
		Select("announcements.id, announcements.title, announcements.content, announcements.type, announcements.priority, announcements.created_at, users.name AS author").
		Joins("LEFT JOIN users ON users.id = announcements.created_by").
		Where("announcements.company_id = ?", companyID).
		Order("announcements.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]*announcement.View, 0, len(rows))
	for _, rw := range rows {
		author := rw.Author
		if author == "" {
			author = "Unknown"
		}
		views = append(views, &announcement.View{
			ID:       rw.ID,
			Title:    rw.Title,
			Content:  rw.Content,
			Author:   author,
			Date:     rw.CreatedAt.Format("2006-01-02"),
			Type:     rw.Type,
			Priority: rw.Priority,
		})
	}
	return views, nil
}

func (r *Repository) GetByID(id, companyID int64) (*announcement.Announcement, error) {
	var m annmodel.Announcement
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &announcement.Announcement{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Type:      m.Type,
		Priority:  m.Priority,
		CreatedBy: m.CreatedBy,
		CompanyID: m.CompanyID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r *Repository) Create(a *announcement.Announcement) error {
	m := annmodel.Announcement{
		Title:     a.Title,
		Content:   a.Content,
		Type:      a.Type,
		Priority:  a.Priority,
		CreatedBy: a.CreatedBy,
		CompanyID: a.CompanyID,
	}
	if err := r.db.Create(&m).Error; err != nil {
		return err
	}
	a.ID = m.ID
	a.CreatedAt = m.CreatedAt
	a.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *Repository) Update(id, companyID int64, title, content, annType, priority string) error {
	return r.db.Model(&annmodel.Announcement{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Updates(map[string]interface{}{
			"title":      title,
			"content":    content,
			"type":       annType,
			"priority":   priority,
			"updated_at": time.Now(),
		}).Error
}

func (r *Repository) Delete(id, companyID int64) error {
	return r.db.Where("id = ? AND company_id = ?", id, companyID).
		Delete(&annmodel.Announcement{}).Error
}
