package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
)

// memoryRepository is an in-memory Repository for service tests. It
// mimics the database contracts the services rely on: record-not-found
// misses, unique-index violations and insertion ordering.
type memoryRepository struct {
	mu sync.Mutex

	users    []*models.User
	students []*models.Student
	lessons  []*models.Lesson
	favs     []*models.Favorite
	ratings  []*models.Rating
	school   *models.School
	events   []*models.EventRecord
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

func (m *memoryRepository) User() repositories.UserRepository         { return (*memUserRepo)(m) }
func (m *memoryRepository) Student() repositories.StudentRepository   { return (*memStudentRepo)(m) }
func (m *memoryRepository) Lesson() repositories.LessonRepository     { return (*memLessonRepo)(m) }
func (m *memoryRepository) Favorite() repositories.FavoriteRepository { return (*memFavoriteRepo)(m) }
func (m *memoryRepository) Rating() repositories.RatingRepository     { return (*memRatingRepo)(m) }
func (m *memoryRepository) School() repositories.SchoolRepository     { return (*memSchoolRepo)(m) }
func (m *memoryRepository) Dashboard() repositories.DashboardRepository {
	return (*memDashboardRepo)(m)
}
func (m *memoryRepository) Event() repositories.EventRepository { return (*memEventRepo)(m) }

func (m *memoryRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *memoryRepository) Ping(ctx context.Context) error { return nil }
func (m *memoryRepository) Close() error                   { return nil }

// ===== USER =====

type memUserRepo memoryRepository

func (r *memUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return uniqueViolation()
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	r.users = append(r.users, user)
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByIDWithStudent(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	user, err := r.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.UserID == user.ID {
			copied := *s
			user.Student = &copied
			break
		}
	}
	return user, nil
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, tx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *memUserRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			// cascade to the student profile and its children
			for j, s := range r.students {
				if s.UserID == id {
					(*memoryRepository)(r).dropStudentLocked(s.ID)
					r.students = append(r.students[:j], r.students[j+1:]...)
					break
				}
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryRepository) dropStudentLocked(studentID string) {
	favs := m.favs[:0]
	for _, f := range m.favs {
		if f.StudentID != studentID {
			favs = append(favs, f)
		}
	}
	m.favs = favs
	ratings := m.ratings[:0]
	for _, rt := range m.ratings {
		if rt.StudentID != studentID {
			ratings = append(ratings, rt)
		}
	}
	m.ratings = ratings
}

// ===== STUDENT =====

type memStudentRepo memoryRepository

func (r *memStudentRepo) Create(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	student.CreatedAt = time.Now()
	r.students = append(r.students, student)
	return nil
}

func (r *memStudentRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memStudentRepo) GetByIDWithUser(ctx context.Context, tx *gorm.DB, id string) (*models.Student, error) {
	student, err := r.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == student.UserID {
			copied := *u
			student.User = &copied
			break
		}
	}
	return student, nil
}

func (r *memStudentRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.UserID == userID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memStudentRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*models.Student, 0, len(r.students))
	for _, s := range r.students {
		if filters.Search != nil {
			term := strings.ToLower(*filters.Search)
			email := ""
			for _, u := range r.users {
				if u.ID == s.UserID {
					email = u.Email
				}
			}
			if !strings.Contains(strings.ToLower(s.FullName), term) &&
				!strings.Contains(strings.ToLower(email), term) {
				continue
			}
		}
		copied := *s
		for _, u := range r.users {
			if u.ID == s.UserID {
				user := *u
				copied.User = &user
			}
		}
		matched = append(matched, &copied)
	}

	// newest first, like the database ordering
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	matched = paginate(matched, filters.Offset, filters.Limit)
	return matched, total, nil
}

func (r *memStudentRepo) ListAllWithUser(ctx context.Context, tx *gorm.DB) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Student, 0, len(r.students))
	for _, s := range r.students {
		copied := *s
		for _, u := range r.users {
			if u.ID == s.UserID {
				user := *u
				copied.User = &user
			}
		}
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memStudentRepo) Update(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.students {
		if s.ID == student.ID {
			copied := *student
			copied.User = nil
			copied.CreatedAt = s.CreatedAt
			r.students[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memStudentRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.students {
		if s.ID == id {
			(*memoryRepository)(r).dropStudentLocked(id)
			r.students = append(r.students[:i], r.students[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memStudentRepo) GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*models.Student, error) {
	students, _, err := r.List(ctx, tx, repositories.StudentFilters{Limit: limit})
	return students, err
}

// ===== LESSON =====

type memLessonRepo memoryRepository

func (r *memLessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}
	lesson.CreatedAt = time.Now()
	r.lessons = append(r.lessons, lesson)
	return nil
}

func (r *memLessonRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lessons {
		if l.ID == id {
			copied := *l
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memLessonRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.LessonFilters) ([]*models.Lesson, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*models.Lesson, 0, len(r.lessons))
	for _, l := range r.lessons {
		if filters.Search != nil {
			term := strings.ToLower(*filters.Search)
			if !strings.Contains(strings.ToLower(l.Title), term) &&
				!strings.Contains(strings.ToLower(l.Description), term) {
				continue
			}
		}
		copied := *l
		matched = append(matched, &copied)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	matched = paginate(matched, filters.Offset, filters.Limit)
	return matched, total, nil
}

func (r *memLessonRepo) Update(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.lessons {
		if l.ID == lesson.ID {
			copied := *lesson
			copied.CreatedAt = l.CreatedAt
			r.lessons[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memLessonRepo) UpdateRating(ctx context.Context, tx *gorm.DB, id string, rating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lessons {
		if l.ID == id {
			l.Rating = rating
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memLessonRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.lessons {
		if l.ID == id {
			r.lessons = append(r.lessons[:i], r.lessons[i+1:]...)
			favs := r.favs[:0]
			for _, f := range r.favs {
				if f.LessonID != id {
					favs = append(favs, f)
				}
			}
			r.favs = favs
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memLessonRepo) CountFavorites(ctx context.Context, tx *gorm.DB, lessonIDs []string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(lessonIDs))
	for _, id := range lessonIDs {
		wanted[id] = true
	}
	counts := make(map[string]int64)
	for _, f := range r.favs {
		if wanted[f.LessonID] {
			counts[f.LessonID]++
		}
	}
	return counts, nil
}

// ===== FAVORITE =====

type memFavoriteRepo memoryRepository

func (r *memFavoriteRepo) Create(ctx context.Context, tx *gorm.DB, favorite *models.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.favs {
		if f.StudentID == favorite.StudentID && f.LessonID == favorite.LessonID {
			return uniqueViolation()
		}
	}
	if favorite.ID == "" {
		favorite.ID = uuid.NewString()
	}
	favorite.CreatedAt = time.Now()
	r.favs = append(r.favs, favorite)
	return nil
}

func (r *memFavoriteRepo) GetByStudentAndLesson(ctx context.Context, tx *gorm.DB, studentID, lessonID string) (*models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.favs {
		if f.StudentID == studentID && f.LessonID == lessonID {
			copied := *f
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memFavoriteRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string, filters repositories.FavoriteFilters) ([]*models.Favorite, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*models.Favorite, 0)
	for _, f := range r.favs {
		if f.StudentID != studentID {
			continue
		}
		copied := *f
		for _, l := range r.lessons {
			if l.ID == f.LessonID {
				lesson := *l
				copied.Lesson = &lesson
			}
		}
		matched = append(matched, &copied)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	matched = paginate(matched, filters.Offset, filters.Limit)
	return matched, total, nil
}

func (r *memFavoriteRepo) ListLessonIDsByStudent(ctx context.Context, tx *gorm.DB, studentID string, lessonIDs []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(lessonIDs))
	for _, id := range lessonIDs {
		wanted[id] = true
	}
	var out []string
	for _, f := range r.favs {
		if f.StudentID == studentID && wanted[f.LessonID] {
			out = append(out, f.LessonID)
		}
	}
	return out, nil
}

func (r *memFavoriteRepo) Delete(ctx context.Context, tx *gorm.DB, studentID, lessonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.favs {
		if f.StudentID == studentID && f.LessonID == lessonID {
			r.favs = append(r.favs[:i], r.favs[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ===== RATING =====

type memRatingRepo memoryRepository

func (r *memRatingRepo) Upsert(ctx context.Context, tx *gorm.DB, rating *models.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.ratings {
		if existing.StudentID == rating.StudentID && existing.LessonID == rating.LessonID {
			existing.Value = rating.Value
			existing.UpdatedAt = time.Now()
			return nil
		}
	}
	if rating.ID == "" {
		rating.ID = uuid.NewString()
	}
	rating.CreatedAt = time.Now()
	r.ratings = append(r.ratings, rating)
	return nil
}

func (r *memRatingRepo) GetByStudentAndLesson(ctx context.Context, tx *gorm.DB, studentID, lessonID string) (*models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range r.ratings {
		if rt.StudentID == studentID && rt.LessonID == lessonID {
			copied := *rt
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRatingRepo) Aggregate(ctx context.Context, tx *gorm.DB, lessonID string) (float64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, count int64
	for _, rt := range r.ratings {
		if rt.LessonID == lessonID {
			sum += int64(rt.Value)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (r *memRatingRepo) AggregateAll(ctx context.Context, tx *gorm.DB) (float64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, count int64
	for _, rt := range r.ratings {
		sum += int64(rt.Value)
		count++
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// ===== SCHOOL =====

type memSchoolRepo memoryRepository

func (r *memSchoolRepo) Get(ctx context.Context, tx *gorm.DB) (*models.School, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.school == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r.school
	return &copied, nil
}

func (r *memSchoolRepo) Upsert(ctx context.Context, tx *gorm.DB, school *models.School) (*models.School, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if school.ID == "" {
		school.ID = uuid.NewString()
	}
	copied := *school
	r.school = &copied
	return school, nil
}

// ===== DASHBOARD =====

type memDashboardRepo memoryRepository

func (r *memDashboardRepo) GetTotalStudents(ctx context.Context, tx *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.students)), nil
}

func (r *memDashboardRepo) GetTotalLessons(ctx context.Context, tx *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.lessons)), nil
}

func (r *memDashboardRepo) GetTotalFavorites(ctx context.Context, tx *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.favs)), nil
}

func (r *memDashboardRepo) GetStudentRegistrationsByDay(ctx context.Context, tx *gorm.DB, since time.Time) ([]repositories.DailyCountData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byDay := make(map[time.Time]int64)
	for _, s := range r.students {
		if s.CreatedAt.Before(since) {
			continue
		}
		day := s.CreatedAt.UTC().Truncate(24 * time.Hour)
		byDay[day]++
	}
	out := make([]repositories.DailyCountData, 0, len(byDay))
	for day, count := range byDay {
		out = append(out, repositories.DailyCountData{Day: day, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (r *memDashboardRepo) GetLessonRatingDistribution(ctx context.Context, tx *gorm.DB) ([]repositories.RatingCountData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[int]int64)
	for _, l := range r.lessons {
		if l.Rating > 0 {
			counts[int(l.Rating+0.5)]++
		}
	}
	out := make([]repositories.RatingCountData, 0, len(counts))
	for rating, count := range counts {
		out = append(out, repositories.RatingCountData{Rating: rating, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating < out[j].Rating })
	return out, nil
}

func (r *memDashboardRepo) GetTopFavoritedLessons(ctx context.Context, tx *gorm.DB, limit int) ([]repositories.TopLessonData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, f := range r.favs {
		counts[f.LessonID]++
	}
	lessons := make([]*models.Lesson, len(r.lessons))
	copy(lessons, r.lessons)
	sort.SliceStable(lessons, func(i, j int) bool {
		if counts[lessons[i].ID] != counts[lessons[j].ID] {
			return counts[lessons[i].ID] > counts[lessons[j].ID]
		}
		return lessons[i].CreatedAt.Before(lessons[j].CreatedAt)
	})
	if limit < len(lessons) {
		lessons = lessons[:limit]
	}
	out := make([]repositories.TopLessonData, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, repositories.TopLessonData{
			LessonID:      l.ID,
			Title:         l.Title,
			ImageURL:      l.ImageURL,
			Rating:        l.Rating,
			FavoriteCount: counts[l.ID],
		})
	}
	return out, nil
}

// ===== EVENT =====

type memEventRepo memoryRepository

func (r *memEventRepo) Create(ctx context.Context, tx *gorm.DB, record *models.EventRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = time.Now()
	r.events = append(r.events, record)
	return nil
}

func (r *memEventRepo) ListUnpublished(ctx context.Context, tx *gorm.DB, limit int) ([]*models.EventRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.EventRecord
	for _, e := range r.events {
		if e.PublishedAt == nil {
			copied := *e
			out = append(out, &copied)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *memEventRepo) MarkPublished(ctx context.Context, tx *gorm.DB, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for _, e := range r.events {
		if wanted[e.ID] {
			published := now
			e.PublishedAt = &published
		}
	}
	return nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
