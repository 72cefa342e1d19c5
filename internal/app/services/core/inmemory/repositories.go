// Package inmemory is test support: slice-backed implementations of the
// repository contracts plus fixtures. They follow the MongoDB repositories'
// semantics (insertion order, nil for missing documents, ErrMongoDBNotObjectID
// for ids that are not hex ObjectIDs) and are not wired into any binary.
package inmemory

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/exceptions"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (models.UserID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return "", exceptions.ErrEmailAlreadyExist(nil)
		}
	}

	stored := *user
	stored.ID = models.UserID(primitive.NewObjectID().Hex())
	r.users = append(r.users, stored)
	return stored.ID, nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID models.UserID) (*models.User, error) {
	if err := checkObjectID(userID.String()); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == userID {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindDoctorsCreatedBy(ctx context.Context, mainHeadID models.UserID) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doctors := []models.User{}
	for _, user := range r.users {
		if user.IsDoctorOf(mainHeadID) {
			doctors = append(doctors, user)
		}
	}
	return doctors, nil
}

func (r *UserRepository) UpdateActiveStatus(ctx context.Context, userID models.UserID, isActive bool, updatedAt time.Time) error {
	if err := checkObjectID(userID.String()); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == userID {
			r.users[i].IsActive = isActive
			r.users[i].SetUpdatedAt(updatedAt)
			return nil
		}
	}
	return nil
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

type PatientRepository struct {
	mu       sync.RWMutex
	patients []models.Patient
}

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{}
}

func (r *PatientRepository) CreatePatient(ctx context.Context, patient *models.Patient) (models.PatientID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *patient
	stored.ID = models.PatientID(primitive.NewObjectID().Hex())
	r.patients = append(r.patients, stored)
	return stored.ID, nil
}

func (r *PatientRepository) FindByID(ctx context.Context, patientID models.PatientID) (*models.Patient, error) {
	if err := checkObjectID(patientID.String()); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, patient := range r.patients {
		if patient.ID == patientID {
			found := patient
			return &found, nil
		}
	}
	return nil, nil
}

func (r *PatientRepository) FindByScope(ctx context.Context, scope *models.PatientScope) ([]models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patients := []models.Patient{}
	if scope.IsEmpty() {
		return patients, nil
	}
	for i := range r.patients {
		if scope.Matches(&r.patients[i]) {
			patients = append(patients, r.patients[i])
		}
	}
	return patients, nil
}

func (r *PatientRepository) UpdatePatient(ctx context.Context, patientID models.PatientID, patch *models.PatientPatch, updatedAt time.Time) error {
	if err := checkObjectID(patientID.String()); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.patients {
		if r.patients[i].ID == patientID {
			patch.ApplyTo(&r.patients[i])
			r.patients[i].SetUpdatedAt(updatedAt)
			return nil
		}
	}
	return nil
}

func (r *PatientRepository) DeleteByID(ctx context.Context, patientID models.PatientID) error {
	if err := checkObjectID(patientID.String()); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.patients {
		if r.patients[i].ID == patientID {
			r.patients = append(r.patients[:i], r.patients[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *PatientRepository) CountByDoctorIDs(ctx context.Context, doctorIDs []models.UserID) (map[models.UserID]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[models.UserID]int64, len(doctorIDs))
	for _, doctorID := range doctorIDs {
		for i := range r.patients {
			if r.patients[i].IsAssignedTo(doctorID) {
				counts[doctorID]++
			}
		}
	}
	return counts, nil
}

func (r *PatientRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

type SessionRepository struct {
	mu       sync.RWMutex
	sessions []models.Session
	Now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{Now: time.Now}
}

func (r *SessionRepository) CreateSession(ctx context.Context, userID models.UserID, email string, role models.Role, token string, expiresAt *int64) (models.SessionID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := models.Session{
		ID:        models.SessionID(primitive.NewObjectID().Hex()),
		UserID:    userID,
		Email:     email,
		Role:      role,
		Token:     token,
		CreatedAt: r.Now(),
		ExpiresAt: expiresAt,
	}
	r.sessions = append(r.sessions, session)
	return session.ID, nil
}

func (r *SessionRepository) FindSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, session := range r.sessions {
		if session.Token == token {
			found := session
			return &found, nil
		}
	}
	return nil, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, sessionID models.SessionID) error {
	if err := checkObjectID(sessionID.String()); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = filterSessions(r.sessions, func(s models.Session) bool { return s.ID != sessionID })
	return nil
}

func (r *SessionRepository) DeleteSessionsForEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = filterSessions(r.sessions, func(s models.Session) bool { return s.Email != email })
	return nil
}

func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.sessions)
	r.sessions = filterSessions(r.sessions, func(s models.Session) bool { return s.IsActiveAt(now) })
	return int64(before - len(r.sessions)), nil
}

func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

// Len reports how many sessions are stored.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func filterSessions(sessions []models.Session, keep func(models.Session) bool) []models.Session {
	kept := sessions[:0]
	for _, session := range sessions {
		if keep(session) {
			kept = append(kept, session)
		}
	}
	return kept
}

// AuditPublisher records every published event.
type AuditPublisher struct {
	mu     sync.Mutex
	Events []models.AuditEvent
	Err    error
}

func (p *AuditPublisher) Publish(ctx context.Context, event *models.AuditEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, *event)
	return nil
}

// Actions lists the published actions in order.
func (p *AuditPublisher) Actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	actions := make([]string, len(p.Events))
	for i, event := range p.Events {
		actions[i] = event.Action
	}
	return actions
}

// RedisRepository stores JSON encoded values like the Redis repository
// does, without expiry.
type RedisRepository struct {
	mu      sync.Mutex
	Values  map[string]string
	Sets    map[string]map[string]struct{}
	Counter map[string]int
	Err     error
}

func NewRedisRepository() *RedisRepository {
	return &RedisRepository{
		Values:  map[string]string{},
		Sets:    map[string]map[string]struct{}{},
		Counter: map[string]int{},
	}
}

func (r *RedisRepository) Delete(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	for _, key := range keys {
		delete(r.Values, key)
		delete(r.Sets, key)
		delete(r.Counter, key)
	}
	return nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	r.Values[key] = string(jsonValue)
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return "", r.Err
	}
	return r.Values[key], nil
}

func (r *RedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return false, r.Err
	}
	if _, exists := r.Values[key]; exists {
		return false, nil
	}
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	r.Values[key] = string(jsonValue)
	return true, nil
}

func (r *RedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return 0, r.Err
	}
	r.Counter[key]++
	return r.Counter[key], nil
}

func (r *RedisRepository) AddToSet(ctx context.Context, key string, exp time.Duration, values ...interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	if r.Sets[key] == nil {
		r.Sets[key] = map[string]struct{}{}
	}
	for _, value := range values {
		if s, ok := value.(string); ok {
			r.Sets[key][s] = struct{}{}
		}
	}
	return nil
}

func (r *RedisRepository) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	members := make([]string, 0, len(r.Sets[key]))
	for member := range r.Sets[key] {
		members = append(members, member)
	}
	sort.Strings(members)
	return members, nil
}

func checkObjectID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	return nil
}
