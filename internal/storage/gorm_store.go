package storage

import (
	"context"
	"errors"
	"fmt"
	"meetsync/internal/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type GormStore struct {
	DB *gorm.DB
}

func OpenMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// NewGormStore wraps db and creates the groups, members and availability
// tables when they are missing.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.Group{}, &models.Member{}, &models.Availability{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &GormStore{DB: db}, nil
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return err
}

func (r *GormStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	return r.DB.WithContext(ctx).Create(group).Error
}

func (r *GormStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&group).Error
	if err != nil {
		return nil, notFound(err, "group %s", id)
	}
	return &group, nil
}

func (r *GormStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}
	return r.DB.WithContext(ctx).Create(member).Error
}

func (r *GormStore) GetMember(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, notFound(err, "member %s", id)
	}
	return &member, nil
}

func (r *GormStore) ListMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	var list []*models.Member
	err := r.DB.WithContext(ctx).Where("group_id = ?", groupID).Order("joined_at asc").Find(&list).Error
	return list, err
}

func (r *GormStore) UpsertAvailability(ctx context.Context, groupID, memberID string, dates []string, slots map[string][]models.TimeSlot) (*models.Availability, error) {
	incoming := (&models.Availability{SelectedDates: dates, TimeSlots: slots}).Clone()
	var record models.Availability

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("group_id = ? AND member_id = ?", groupID, memberID).
			First(&record).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = models.Availability{
				ID:            uuid.NewString(),
				GroupID:       groupID,
				MemberID:      memberID,
				SelectedDates: incoming.SelectedDates,
				TimeSlots:     incoming.TimeSlots,
				UpdatedAt:     time.Now().UTC(),
			}
			return tx.Create(&record).Error
		case err != nil:
			return err
		}

		record.SelectedDates = incoming.SelectedDates
		record.TimeSlots = incoming.TimeSlots
		record.UpdatedAt = time.Now().UTC()
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, fmt.Errorf("upsert availability: %w", err)
	}
	return &record, nil
}

func (r *GormStore) ListAvailability(ctx context.Context, groupID string) ([]*models.Availability, error) {
	var list []*models.Availability
	err := r.DB.WithContext(ctx).Where("group_id = ?", groupID).Find(&list).Error
	return list, err
}

func (r *GormStore) GetAvailability(ctx context.Context, groupID, memberID string) (*models.Availability, error) {
	var record models.Availability
	err := r.DB.WithContext(ctx).Where("group_id = ? AND member_id = ?", groupID, memberID).First(&record).Error
	if err != nil {
		return nil, notFound(err, "availability of member %s in group %s", memberID, groupID)
	}
	return &record, nil
}

func (r *GormStore) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
