package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ojas8taori/trash-taste-ai/internal/models"
)

// MemoryStore is the ephemeral Store variant: process-lifetime maps with
// manually incremented integer ids. It seeds one demo user so the app is
// usable with zero setup. State is lost on restart.
type MemoryStore struct {
	mu sync.RWMutex

	users            map[int]*models.User
	categories       map[int]*models.WasteCategory
	pickups          map[int]*models.Pickup
	challenges       map[int]*models.Challenge
	userChallenges   map[int]*models.UserChallenge
	scans            map[int]*models.WasteScan
	reports          map[int]*models.CommunityReport
	stats            map[int]*models.UserStats
	achievements     map[int]*models.Achievement
	userAchievements map[int]*models.UserAchievement

	nextID map[string]int
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		users:            make(map[int]*models.User),
		categories:       make(map[int]*models.WasteCategory),
		pickups:          make(map[int]*models.Pickup),
		challenges:       make(map[int]*models.Challenge),
		userChallenges:   make(map[int]*models.UserChallenge),
		scans:            make(map[int]*models.WasteScan),
		reports:          make(map[int]*models.CommunityReport),
		stats:            make(map[int]*models.UserStats),
		achievements:     make(map[int]*models.Achievement),
		userAchievements: make(map[int]*models.UserAchievement),
		nextID:           make(map[string]int),
	}

	// Demo user, always id 1
	s.users[s.alloc("users")] = &models.User{
		ID:        1,
		Username:  "demo",
		Email:     "demo@trashtaste.app",
		Password:  "",
		EcoPoints: 0,
		Level:     1,
		CreatedAt: time.Now(),
	}

	return s
}

// alloc hands out the next id for a keyspace. Caller must hold mu,
// except during construction.
func (s *MemoryStore) alloc(keyspace string) int {
	s.nextID[keyspace]++
	return s.nextID[keyspace]
}

// -- Users -- //

func (s *MemoryStore) GetUser(_ context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := *user
	return &u, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			u := *user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.alloc("users")
	if user.Level == 0 {
		user.Level = 1
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *MemoryStore) UpdateUserPoints(_ context.Context, userID, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	user.EcoPoints = points
	user.Level = models.LevelForPoints(points)
	return nil
}

func (s *MemoryStore) GetLeaderboard(_ context.Context, limit int) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].EcoPoints > users[j].EcoPoints
	})
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

// -- Waste categories -- //

func (s *MemoryStore) GetWasteCategories(_ context.Context) ([]models.WasteCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]models.WasteCategory, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (s *MemoryStore) GetWasteCategory(_ context.Context, id int) (*models.WasteCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *category
	return &c, nil
}

// CreateWasteCategory is used by the seeder; the persistent variant gets
// categories through GORM directly.
func (s *MemoryStore) CreateWasteCategory(category *models.WasteCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category.ID = s.alloc("categories")
	c := *category
	s.categories[category.ID] = &c
}

// -- Pickups -- //

func (s *MemoryStore) GetUserPickups(_ context.Context, userID int) ([]models.Pickup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pickups := make([]models.Pickup, 0)
	for _, p := range s.pickups {
		if p.UserID == userID {
			pickups = append(pickups, *p)
		}
	}
	sort.Slice(pickups, func(i, j int) bool {
		return pickups[i].ScheduledDate.After(pickups[j].ScheduledDate)
	})
	return pickups, nil
}

func (s *MemoryStore) CreatePickup(_ context.Context, pickup *models.Pickup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pickup.ID = s.alloc("pickups")
	if pickup.Status == "" {
		pickup.Status = models.PickupScheduled
	}
	if pickup.CreatedAt.IsZero() {
		pickup.CreatedAt = time.Now()
	}
	p := *pickup
	s.pickups[pickup.ID] = &p
	return nil
}

func (s *MemoryStore) UpdatePickupStatus(_ context.Context, id int, status models.PickupStatus, weight *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pickup, ok := s.pickups[id]
	if !ok {
		return ErrNotFound
	}
	pickup.Status = status
	if weight != nil {
		w := *weight
		pickup.Weight = &w
	}
	return nil
}

// -- Challenges -- //

func (s *MemoryStore) CreateChallenge(challenge *models.Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	challenge.ID = s.alloc("challenges")
	c := *challenge
	s.challenges[challenge.ID] = &c
}

func (s *MemoryStore) GetActiveChallenges(_ context.Context) ([]models.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenges := make([]models.Challenge, 0)
	for _, c := range s.challenges {
		if c.IsActive {
			challenges = append(challenges, *c)
		}
	}
	sort.Slice(challenges, func(i, j int) bool { return challenges[i].ID < challenges[j].ID })
	return challenges, nil
}

func (s *MemoryStore) GetUserChallenges(_ context.Context, userID int) ([]models.UserChallenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ucs := make([]models.UserChallenge, 0)
	for _, uc := range s.userChallenges {
		if uc.UserID == userID {
			entry := *uc
			if challenge, ok := s.challenges[uc.ChallengeID]; ok {
				entry.Challenge = *challenge
			}
			ucs = append(ucs, entry)
		}
	}
	sort.Slice(ucs, func(i, j int) bool { return ucs[i].ID < ucs[j].ID })
	return ucs, nil
}

func (s *MemoryStore) UpdateChallengeProgress(_ context.Context, userID, challengeID, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	progress = clampProgress(progress)

	var uc *models.UserChallenge
	for _, entry := range s.userChallenges {
		if entry.UserID == userID && entry.ChallengeID == challengeID {
			uc = entry
			break
		}
	}
	if uc == nil {
		uc = &models.UserChallenge{
			UserID:      userID,
			ChallengeID: challengeID,
			CreatedAt:   time.Now(),
		}
		uc.ID = s.alloc("user_challenges")
		s.userChallenges[uc.ID] = uc
	}

	if progress <= uc.Progress {
		return nil
	}
	uc.Progress = progress
	if progress >= 100 && !uc.Completed {
		now := time.Now()
		uc.Completed = true
		uc.CompletedAt = &now
	}
	return nil
}

// -- Waste scans -- //

func (s *MemoryStore) CreateWasteScan(_ context.Context, scan *models.WasteScan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	scan.ID = s.alloc("scans")
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now()
	}
	sc := *scan
	s.scans[scan.ID] = &sc
	return nil
}

func (s *MemoryStore) GetUserScans(_ context.Context, userID, limit int) ([]models.WasteScan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scans := make([]models.WasteScan, 0)
	for _, sc := range s.scans {
		if sc.UserID == userID {
			scans = append(scans, *sc)
		}
	}
	sort.Slice(scans, func(i, j int) bool {
		if scans[i].CreatedAt.Equal(scans[j].CreatedAt) {
			return scans[i].ID > scans[j].ID
		}
		return scans[i].CreatedAt.After(scans[j].CreatedAt)
	})
	if limit > 0 && len(scans) > limit {
		scans = scans[:limit]
	}
	return scans, nil
}

func (s *MemoryStore) GetRecentScans(_ context.Context, limit int) ([]models.WasteScan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scans := make([]models.WasteScan, 0, len(s.scans))
	for _, sc := range s.scans {
		scans = append(scans, *sc)
	}
	sort.Slice(scans, func(i, j int) bool {
		if scans[i].CreatedAt.Equal(scans[j].CreatedAt) {
			return scans[i].ID > scans[j].ID
		}
		return scans[i].CreatedAt.After(scans[j].CreatedAt)
	})
	if limit > 0 && len(scans) > limit {
		scans = scans[:limit]
	}
	return scans, nil
}

func (s *MemoryStore) CountUserScans(_ context.Context, userID int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, sc := range s.scans {
		if sc.UserID == userID {
			count++
		}
	}
	return count, nil
}

// -- Community reports -- //

func (s *MemoryStore) CreateCommunityReport(_ context.Context, report *models.CommunityReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	report.ID = s.alloc("reports")
	if report.Status == "" {
		report.Status = models.ReportPending
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	r := *report
	s.reports[report.ID] = &r
	return nil
}

func (s *MemoryStore) GetCommunityReports(_ context.Context) ([]models.CommunityReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reports := make([]models.CommunityReport, 0, len(s.reports))
	for _, r := range s.reports {
		reports = append(reports, *r)
	}
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].ID > reports[j].ID
		}
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

// -- Monthly stats -- //

func (s *MemoryStore) GetUserStats(_ context.Context, userID, month, year int) (*models.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.stats {
		if st.UserID == userID && st.Month == month && st.Year == year {
			copied := *st
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) AddUserStats(_ context.Context, userID, month, year int, wasteReduced, carbonSaved float64, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.stats {
		if st.UserID == userID && st.Month == month && st.Year == year {
			st.WasteReduced += wasteReduced
			st.CarbonSaved += carbonSaved
			st.PointsEarned += points
			return nil
		}
	}
	stats := &models.UserStats{
		UserID:       userID,
		Month:        month,
		Year:         year,
		WasteReduced: wasteReduced,
		CarbonSaved:  carbonSaved,
		PointsEarned: points,
	}
	stats.ID = s.alloc("stats")
	s.stats[stats.ID] = stats
	return nil
}

func (s *MemoryStore) GetUserStatsTotals(_ context.Context, userID int) (float64, float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var waste, carbon float64
	for _, st := range s.stats {
		if st.UserID == userID {
			waste += st.WasteReduced
			carbon += st.CarbonSaved
		}
	}
	return waste, carbon, nil
}

// -- Achievements -- //

func (s *MemoryStore) CreateAchievement(achievement *models.Achievement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	achievement.ID = s.alloc("achievements")
	a := *achievement
	s.achievements[achievement.ID] = &a
}

func (s *MemoryStore) GetAchievements(_ context.Context) ([]models.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	achievements := make([]models.Achievement, 0, len(s.achievements))
	for _, a := range s.achievements {
		achievements = append(achievements, *a)
	}
	sort.Slice(achievements, func(i, j int) bool {
		return achievements[i].Threshold < achievements[j].Threshold
	})
	return achievements, nil
}

func (s *MemoryStore) GetUserAchievements(_ context.Context, userID int) ([]models.UserAchievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uas := make([]models.UserAchievement, 0)
	for _, ua := range s.userAchievements {
		if ua.UserID == userID {
			entry := *ua
			if achievement, ok := s.achievements[ua.AchievementID]; ok {
				entry.Achievement = *achievement
			}
			uas = append(uas, entry)
		}
	}
	sort.Slice(uas, func(i, j int) bool { return uas[i].ID < uas[j].ID })
	return uas, nil
}

func (s *MemoryStore) CreateUserAchievement(_ context.Context, ua *models.UserAchievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ua.ID = s.alloc("user_achievements")
	if ua.UnlockedAt.IsZero() {
		ua.UnlockedAt = time.Now()
	}
	entry := *ua
	s.userAchievements[ua.ID] = &entry
	return nil
}
