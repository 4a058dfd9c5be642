package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ojas8taori/trash-taste-ai/internal/models"
	"gorm.io/gorm"
)

// GormStore is the persistent Store variant, backed by GORM
// (Postgres in production, SQLite in tests).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the schema for all models.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.WasteCategory{},
		&models.Pickup{},
		&models.Challenge{},
		&models.UserChallenge{},
		&models.WasteScan{},
		&models.CommunityReport{},
		&models.UserStats{},
		&models.Achievement{},
		&models.UserAchievement{},
	)
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// -- Users -- //

func (s *GormStore) GetUser(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.Level == 0 {
		user.Level = 1
	}
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *GormStore) UpdateUserPoints(ctx context.Context, userID, points int) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"eco_points": points,
			"level":      models.LevelForPoints(points),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) GetLeaderboard(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Order("eco_points DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// -- Waste categories -- //

func (s *GormStore) GetWasteCategories(ctx context.Context) ([]models.WasteCategory, error) {
	var categories []models.WasteCategory
	err := s.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (s *GormStore) GetWasteCategory(ctx context.Context, id int) (*models.WasteCategory, error) {
	var category models.WasteCategory
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &category, nil
}

// -- Pickups -- //

func (s *GormStore) GetUserPickups(ctx context.Context, userID int) ([]models.Pickup, error) {
	var pickups []models.Pickup
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_date DESC").
		Find(&pickups).Error
	return pickups, err
}

func (s *GormStore) CreatePickup(ctx context.Context, pickup *models.Pickup) error {
	if pickup.Status == "" {
		pickup.Status = models.PickupScheduled
	}
	return s.db.WithContext(ctx).Create(pickup).Error
}

func (s *GormStore) UpdatePickupStatus(ctx context.Context, id int, status models.PickupStatus, weight *float64) error {
	updates := map[string]interface{}{"status": status}
	if weight != nil {
		updates["weight"] = *weight
	}
	res := s.db.WithContext(ctx).Model(&models.Pickup{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// -- Challenges -- //

func (s *GormStore) GetActiveChallenges(ctx context.Context) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&challenges).Error
	return challenges, err
}

func (s *GormStore) GetUserChallenges(ctx context.Context, userID int) ([]models.UserChallenge, error) {
	var ucs []models.UserChallenge
	err := s.db.WithContext(ctx).
		Preload("Challenge").
		Where("user_id = ?", userID).
		Find(&ucs).Error
	return ucs, err
}

func (s *GormStore) UpdateChallengeProgress(ctx context.Context, userID, challengeID, progress int) error {
	progress = clampProgress(progress)

	var uc models.UserChallenge
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&uc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		uc = models.UserChallenge{
			UserID:      userID,
			ChallengeID: challengeID,
			CreatedAt:   time.Now(),
		}
		if err := s.db.WithContext(ctx).Create(&uc).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	// Progress only moves forward
	if progress <= uc.Progress {
		return nil
	}

	updates := map[string]interface{}{"progress": progress}
	if progress >= 100 && !uc.Completed {
		now := time.Now()
		updates["completed"] = true
		updates["completed_at"] = now
	}
	return s.db.WithContext(ctx).Model(&uc).Updates(updates).Error
}

// -- Waste scans -- //

func (s *GormStore) CreateWasteScan(ctx context.Context, scan *models.WasteScan) error {
	return s.db.WithContext(ctx).Create(scan).Error
}

func (s *GormStore) GetUserScans(ctx context.Context, userID, limit int) ([]models.WasteScan, error) {
	var scans []models.WasteScan
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&scans).Error
	return scans, err
}

func (s *GormStore) GetRecentScans(ctx context.Context, limit int) ([]models.WasteScan, error) {
	var scans []models.WasteScan
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&scans).Error
	return scans, err
}

func (s *GormStore) CountUserScans(ctx context.Context, userID int) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.WasteScan{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// -- Community reports -- //

func (s *GormStore) CreateCommunityReport(ctx context.Context, report *models.CommunityReport) error {
	if report.Status == "" {
		report.Status = models.ReportPending
	}
	return s.db.WithContext(ctx).Create(report).Error
}

func (s *GormStore) GetCommunityReports(ctx context.Context) ([]models.CommunityReport, error) {
	var reports []models.CommunityReport
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

// -- Monthly stats -- //

func (s *GormStore) GetUserStats(ctx context.Context, userID, month, year int) (*models.UserStats, error) {
	var stats models.UserStats
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&stats).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &stats, nil
}

func (s *GormStore) AddUserStats(ctx context.Context, userID, month, year int, wasteReduced, carbonSaved float64, points int) error {
	var stats models.UserStats
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.UserStats{
			UserID:       userID,
			Month:        month,
			Year:         year,
			WasteReduced: wasteReduced,
			CarbonSaved:  carbonSaved,
			PointsEarned: points,
		}
		return s.db.WithContext(ctx).Create(&stats).Error
	}
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&stats).Updates(map[string]interface{}{
		"waste_reduced": stats.WasteReduced + wasteReduced,
		"carbon_saved":  stats.CarbonSaved + carbonSaved,
		"points_earned": stats.PointsEarned + points,
	}).Error
}

func (s *GormStore) GetUserStatsTotals(ctx context.Context, userID int) (float64, float64, error) {
	var totals struct {
		WasteReduced float64
		CarbonSaved  float64
	}
	err := s.db.WithContext(ctx).Model(&models.UserStats{}).
		Select("COALESCE(SUM(waste_reduced), 0) AS waste_reduced, COALESCE(SUM(carbon_saved), 0) AS carbon_saved").
		Where("user_id = ?", userID).
		Scan(&totals).Error
	return totals.WasteReduced, totals.CarbonSaved, err
}

// -- Achievements -- //

func (s *GormStore) GetAchievements(ctx context.Context) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := s.db.WithContext(ctx).Order("threshold ASC").Find(&achievements).Error
	return achievements, err
}

func (s *GormStore) GetUserAchievements(ctx context.Context, userID int) ([]models.UserAchievement, error) {
	var uas []models.UserAchievement
	err := s.db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Find(&uas).Error
	return uas, err
}

func (s *GormStore) CreateUserAchievement(ctx context.Context, ua *models.UserAchievement) error {
	if ua.UnlockedAt.IsZero() {
		ua.UnlockedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(ua).Error
}
