package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"ladx/config"
	"ladx/internal/domain/entity"
	"ladx/internal/domain/repository"
	"ladx/internal/domain/service"
	"ladx/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testMetrics is shared by all tests in this package; prometheus
// collectors can only be registered once per process.
var (
	testMetricsOnce sync.Once
	testMetrics     *metrics.Metrics
)

func newTestMetrics() *metrics.Metrics {
	testMetricsOnce.Do(func() {
		testMetrics = metrics.NewMetrics()
	})

	return testMetrics
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:     4,
			UserSessionTTL: time.Hour,
			OTPTTL:         10 * time.Minute,
			ResetTokenTTL:  time.Hour,
		},
	}
	cfg.SecretKey.JWT = "test-secret"
	cfg.App.FrontendURL = "https://app.test"

	return cfg
}

// --- in-memory repository fakes ---

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByResetTokenHash(_ context.Context, tokenHash string) (*entity.User, error) {
	for _, user := range r.users {
		if user.ResetPasswordToken == tokenHash &&
			user.ResetPasswordExpires != nil && user.ResetPasswordExpires.After(time.Now()) {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role entity.Role) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range r.users {
		if user.Role == role {
			clone := *user
			out = append(out, &clone)
		}
	}

	return out, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role entity.Role) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}

	return count, nil
}

type fakeAdminRepo struct {
	admins map[string]*entity.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*entity.Admin)}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *entity.Admin) error {
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	clone := *admin
	r.admins[admin.Username] = &clone

	return nil
}

func (r *fakeAdminRepo) FindByUsername(_ context.Context, username string) (*entity.Admin, error) {
	admin, ok := r.admins[username]
	if !ok {
		return nil, repository.ErrAdminNotFound
	}
	clone := *admin

	return &clone, nil
}

func (r *fakeAdminRepo) UpdatePassword(_ context.Context, username string, passwordHash string) error {
	admin, ok := r.admins[username]
	if !ok {
		return repository.ErrAdminNotFound
	}
	admin.Password = passwordHash

	return nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	clone := *order
	r.orders[order.ID] = &clone

	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	clone := *order

	return &clone, nil
}

func (r *fakeOrderRepo) FindByTrackingNumber(_ context.Context, trackingNumber string) (*entity.Order, error) {
	for _, order := range r.orders {
		if order.TrackingNumber == trackingNumber {
			clone := *order

			return &clone, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	order.UpdatedAt = time.Now()
	clone := *order
	r.orders[order.ID] = &clone

	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(r.orders, id)

	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	var out []*entity.Order
	for _, order := range r.orders {
		if filter.UserID != nil && order.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && order.Priority != filter.Priority {
			continue
		}
		clone := *order
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) CountByStatus(_ context.Context) (map[entity.OrderStatus]int64, error) {
	counts := make(map[entity.OrderStatus]int64)
	for _, order := range r.orders {
		counts[order.Status]++
	}

	return counts, nil
}

type fakeTravelPlanRepo struct {
	plans map[uuid.UUID]*entity.TravelPlan
}

func newFakeTravelPlanRepo() *fakeTravelPlanRepo {
	return &fakeTravelPlanRepo{plans: make(map[uuid.UUID]*entity.TravelPlan)}
}

func (r *fakeTravelPlanRepo) Create(_ context.Context, plan *entity.TravelPlan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt
	clone := *plan
	r.plans[plan.ID] = &clone

	return nil
}

func (r *fakeTravelPlanRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.TravelPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrTravelPlanNotFound
	}
	clone := *plan

	return &clone, nil
}

func (r *fakeTravelPlanRepo) Update(_ context.Context, plan *entity.TravelPlan) error {
	if _, ok := r.plans[plan.ID]; !ok {
		return repository.ErrTravelPlanNotFound
	}
	plan.UpdatedAt = time.Now()
	clone := *plan
	r.plans[plan.ID] = &clone

	return nil
}

func (r *fakeTravelPlanRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrTravelPlanNotFound
	}
	delete(r.plans, id)

	return nil
}

func (r *fakeTravelPlanRepo) List(_ context.Context, filter repository.TravelPlanFilter) ([]*entity.TravelPlan, int64, error) {
	var out []*entity.TravelPlan
	for _, plan := range r.plans {
		if filter.UserID != nil && plan.UserID != *filter.UserID {
			continue
		}
		if filter.Unmatched && plan.IsMatched {
			continue
		}
		if filter.Origin != "" && !strings.Contains(strings.ToLower(plan.Origin), strings.ToLower(filter.Origin)) {
			continue
		}
		if filter.Destination != "" && !strings.Contains(strings.ToLower(plan.Destination), strings.ToLower(filter.Destination)) {
			continue
		}
		clone := *plan
		out = append(out, &clone)
	}
	if filter.SortByTravelDate {
		sort.Slice(out, func(i, j int) bool { return out[i].TravelDate.Before(out[j].TravelDate) })
	}

	return out, int64(len(out)), nil
}

func (r *fakeTravelPlanRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.plans)), nil
}

type fakeNotificationRepo struct {
	notifications []*entity.Notification
	createErr     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	notification.CreatedAt = time.Now()
	clone := *notification
	r.notifications = append(r.notifications, &clone)

	return nil
}

func (r *fakeNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	for _, notification := range r.notifications {
		if notification.ID == id {
			clone := *notification

			return &clone, nil
		}
	}

	return nil, repository.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID, unreadOnly bool) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, notification := range r.notifications {
		if notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.Read {
			continue
		}
		clone := *notification
		out = append(out, &clone)
	}

	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, notification := range r.notifications {
		if notification.UserID == userID && !notification.Read {
			count++
		}
	}

	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	for _, notification := range r.notifications {
		if notification.ID == id && notification.UserID == userID {
			notification.Read = true

			return nil
		}
	}

	return repository.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	var updated int64
	for _, notification := range r.notifications {
		if notification.UserID == userID && !notification.Read {
			notification.Read = true
			updated++
		}
	}

	return updated, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	for i, notification := range r.notifications {
		if notification.ID == id && notification.UserID == userID {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)

			return nil
		}
	}

	return repository.ErrNotificationNotFound
}

type fakeActivityRepo struct {
	entries []*entity.ActivityLog
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (r *fakeActivityRepo) Create(_ context.Context, log *entity.ActivityLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.CreatedAt = time.Now()
	clone := *log
	r.entries = append(r.entries, &clone)

	return nil
}

func (r *fakeActivityRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*entity.ActivityLog, error) {
	var out []*entity.ActivityLog
	for _, entry := range r.entries {
		if entry.UserID == userID {
			clone := *entry
			out = append(out, &clone)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *fakeActivityRepo) ListRecent(_ context.Context, limit int) ([]*entity.ActivityLog, error) {
	out := make([]*entity.ActivityLog, 0, len(r.entries))
	for _, entry := range r.entries {
		clone := *entry
		out = append(out, &clone)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

type fakeKYCRepo struct {
	submissions map[uuid.UUID]*entity.KYC
}

func newFakeKYCRepo() *fakeKYCRepo {
	return &fakeKYCRepo{submissions: make(map[uuid.UUID]*entity.KYC)}
}

func (r *fakeKYCRepo) Create(_ context.Context, kyc *entity.KYC) error {
	if kyc.ID == uuid.Nil {
		kyc.ID = uuid.New()
	}
	kyc.CreatedAt = time.Now()
	kyc.UpdatedAt = kyc.CreatedAt
	clone := *kyc
	r.submissions[kyc.ID] = &clone

	return nil
}

func (r *fakeKYCRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.KYC, error) {
	kyc, ok := r.submissions[id]
	if !ok {
		return nil, repository.ErrKYCNotFound
	}
	clone := *kyc

	return &clone, nil
}

func (r *fakeKYCRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.KYC, error) {
	for _, kyc := range r.submissions {
		if kyc.UserID == userID {
			clone := *kyc

			return &clone, nil
		}
	}

	return nil, repository.ErrKYCNotFound
}

func (r *fakeKYCRepo) Update(_ context.Context, kyc *entity.KYC) error {
	if _, ok := r.submissions[kyc.ID]; !ok {
		return repository.ErrKYCNotFound
	}
	kyc.UpdatedAt = time.Now()
	clone := *kyc
	r.submissions[kyc.ID] = &clone

	return nil
}

func (r *fakeKYCRepo) ListByStatus(_ context.Context, status entity.KYCStatus) ([]*entity.KYC, error) {
	var out []*entity.KYC
	for _, kyc := range r.submissions {
		if kyc.Status == status {
			clone := *kyc
			out = append(out, &clone)
		}
	}

	return out, nil
}

// --- transaction fakes ---

type fakeRepoFactory struct {
	userRepo         *fakeUserRepo
	orderRepo        *fakeOrderRepo
	planRepo         *fakeTravelPlanRepo
	notificationRepo *fakeNotificationRepo
	activityRepo     *fakeActivityRepo
}

func (f *fakeRepoFactory) NewUserRepository() repository.UserRepository { return f.userRepo }
func (f *fakeRepoFactory) NewOrderRepository() repository.OrderRepository {
	return f.orderRepo
}
func (f *fakeRepoFactory) NewTravelPlanRepository() repository.TravelPlanRepository {
	return f.planRepo
}
func (f *fakeRepoFactory) NewNotificationRepository() repository.NotificationRepository {
	return f.notificationRepo
}
func (f *fakeRepoFactory) NewActivityLogRepository() repository.ActivityLogRepository {
	return f.activityRepo
}

type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// --- service fakes ---

type fakeMailSender struct {
	sent []service.Mail
	err  error
}

func (s *fakeMailSender) Send(_ context.Context, mail service.Mail) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, mail)

	return nil
}

type fakePusher struct {
	online bool
	pushed []entity.Event
}

func (p *fakePusher) Push(_ uuid.UUID, event entity.Event) {
	p.pushed = append(p.pushed, event)
}

func (p *fakePusher) IsOnline(uuid.UUID) bool { return p.online }

type fakeFlightVerifier struct {
	info *service.FlightInfo
	err  error
}

func (v *fakeFlightVerifier) Verify(context.Context, string) (*service.FlightInfo, error) {
	return v.info, v.err
}

type fakeMediaStore struct {
	uploads []string
	deleted []string
	err     error
}

func (s *fakeMediaStore) Upload(_ context.Context, folder, filename, _ string, content io.Reader) (*service.StoredObject, error) {
	if s.err != nil {
		return nil, s.err
	}
	if _, err := io.Copy(io.Discard, content); err != nil {
		return nil, errors.Wrap(err, "read upload")
	}
	key := folder + "/" + filename
	s.uploads = append(s.uploads, key)

	return &service.StoredObject{URL: "https://cdn.test/" + key, Key: key}, nil
}

func (s *fakeMediaStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)

	return nil
}

type fakeQRCodeService struct{}

func (fakeQRCodeService) GenerateTrackingQR(string) ([]byte, error) {
	return []byte("png"), nil
}

// noopNotifier records events without any delivery side effects.
type noopNotifier struct {
	events []entity.Event
}

func (n *noopNotifier) Notify(_ context.Context, _ uuid.UUID, eventType entity.NotificationType, message string, data map[string]any) {
	n.events = append(n.events, entity.Event{Type: eventType, Message: message, Data: data})
}
