package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rankforge/agency-api/internal/core/domain"
	"github.com/rankforge/agency-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	byID           map[string]*domain.Order
	lastFindFilter string // userID passed to the last FindByID call
	lastListFilter ports.ListOrdersFilter
	updateCalls    int
	createErr      error
	updateErr      error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byID: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id, userID string) (*domain.Order, error) {
	r.lastFindFilter = userID
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	// Enforce the owner filter (mirrors the real Mongo query)
	if userID != "" && o.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, error) {
	r.lastListFilter = f
	var matched []*domain.Order
	for _, o := range r.byID {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		clone := *o
		matched = append(matched, &clone)
	}
	return matched, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, notes string, respondedAt time.Time) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	o, ok := r.byID[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	r.updateCalls++
	o.Status = status
	o.AdminNotes = notes
	at := respondedAt
	o.AdminResponseAt = &at
	return nil
}

func (r *stubOrderRepo) MarkEmailSent(_ context.Context, id string, at time.Time) error {
	o, ok := r.byID[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.EmailSent = true
	sent := at
	o.EmailSentAt = &sent
	return nil
}

func (r *stubOrderRepo) CountByStatus(_ context.Context, status domain.OrderStatus) (int64, error) {
	var n int64
	for _, o := range r.byID {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

type stubNotifier struct {
	jobs []ports.OrderNotification
}

func (n *stubNotifier) Notify(job ports.OrderNotification) {
	n.jobs = append(n.jobs, job)
}

type stubPublisher struct {
	published []publishedEvent
	err       error
}

type publishedEvent struct {
	channel string
	payload any
}

func (p *stubPublisher) Publish(_ context.Context, channel string, payload any) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, publishedEvent{channel: channel, payload: payload})
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func newOrderFixture(repo *stubOrderRepo) (*OrderService, *stubNotifier, *stubPublisher) {
	notifier := &stubNotifier{}
	publisher := &stubPublisher{}
	return NewOrderService(repo, notifier, publisher, discardLogger), notifier, publisher
}

func seedOrder(repo *stubOrderRepo, id, userID string) *domain.Order {
	o := &domain.Order{
		ID:          id,
		UserID:      userID,
		ServiceType: "link_building",
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	repo.byID[id] = o
	return o
}

// ---------------------------------------------------------------------------
// CreateOrder tests
// ---------------------------------------------------------------------------

func TestOrderService_Create_Success(t *testing.T) {
	repo := newStubOrderRepo()
	svc, _, publisher := newOrderFixture(repo)

	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:      "user_1",
		ServiceType: "seo_audit",
		Description: "full site audit",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.ID == "" {
		t.Error("expected a generated order id")
	}
	if order.Status != domain.StatusPending {
		t.Errorf("expected status %q, got %q", domain.StatusPending, order.Status)
	}
	if order.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}
	stored := repo.byID[order.ID]
	if stored == nil {
		t.Fatal("order was not persisted")
	}
	if stored.UserID != "user_1" {
		t.Errorf("expected user_id %q, got %q", "user_1", stored.UserID)
	}

	// The admin channel gets a nudge about the new pending order.
	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.published))
	}
	if publisher.published[0].channel != domain.AdminOrdersChannel {
		t.Errorf("expected channel %q, got %q", domain.AdminOrdersChannel, publisher.published[0].channel)
	}
}

func TestOrderService_Create_PublishFailureDoesNotFailBooking(t *testing.T) {
	repo := newStubOrderRepo()
	notifier := &stubNotifier{}
	publisher := &stubPublisher{err: errors.New("redis down")}
	svc := NewOrderService(repo, notifier, publisher, discardLogger)

	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:      "user_1",
		ServiceType: "seo_audit",
	})
	if err != nil {
		t.Fatalf("publish failure must not fail the booking: %v", err)
	}
	if repo.byID[order.ID] == nil {
		t.Error("order must be persisted even when publish fails")
	}
}

func TestOrderService_Create_RepoError(t *testing.T) {
	repo := newStubOrderRepo()
	repo.createErr = errors.New("db unavailable")
	svc, _, _ := newOrderFixture(repo)

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: "user_1", ServiceType: "seo_audit"})
	if err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// Transition validation tests
// ---------------------------------------------------------------------------

func TestOrderService_Transition_InvalidStatusRejectedBeforeWrite(t *testing.T) {
	repo := newStubOrderRepo()
	svc, notifier, _ := newOrderFixture(repo)
	seedOrder(repo, "ord_1", "user_1")

	_, err := svc.Transition(context.Background(), ports.TransitionInput{
		OrderID:    "ord_1",
		Status:     "Shipped", // not a member of the status set
		Action:     domain.ActionAccept,
		AdminNotes: "looks good",
	})
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	if repo.updateCalls != 0 {
		t.Error("invalid status must not reach the store")
	}
	stored := repo.byID["ord_1"]
	if stored.Status != domain.StatusPending || stored.AdminNotes != "" || stored.AdminResponseAt != nil {
		t.Error("stored order must be untouched after a rejected transition")
	}
	if len(notifier.jobs) != 0 {
		t.Error("no notification may be enqueued for a rejected transition")
	}
}

func TestOrderService_Transition_NotesRequiredForActions(t *testing.T) {
	for _, action := range []string{domain.ActionAccept, domain.ActionReject, domain.ActionUpdate} {
		t.Run(action, func(t *testing.T) {
			repo := newStubOrderRepo()
			svc, notifier, _ := newOrderFixture(repo)
			seedOrder(repo, "ord_1", "user_1")

			_, err := svc.Transition(context.Background(), ports.TransitionInput{
				OrderID: "ord_1",
				Status:  string(domain.StatusProcessing),
				Action:  action,
			})
			if !errors.Is(err, domain.ErrNotesRequired) {
				t.Fatalf("action %q without notes: expected ErrNotesRequired, got %v", action, err)
			}
			if repo.updateCalls != 0 {
				t.Error("missing notes must be caught before any write")
			}
			if len(notifier.jobs) != 0 {
				t.Error("no notification may be enqueued")
			}
		})
	}
}

func TestOrderService_Transition_WhitespaceNotesRejected(t *testing.T) {
	repo := newStubOrderRepo()
	svc, _, _ := newOrderFixture(repo)
	seedOrder(repo, "ord_1", "user_1")

	_, err := svc.Transition(context.Background(), ports.TransitionInput{
		OrderID:    "ord_1",
		Status:     string(domain.StatusProcessing),
		Action:     domain.ActionAccept,
		AdminNotes: "   \t ",
	})
	if !errors.Is(err, domain.ErrNotesRequired) {
		t.Fatalf("expected ErrNotesRequired for whitespace-only notes, got %v", err)
	}
}

func TestOrderService_Transition_UnknownOrder(t *testing.T) {
	repo := newStubOrderRepo()
	svc, _, _ := newOrderFixture(repo)

	_, err := svc.Transition(context.Background(), ports.TransitionInput{
		OrderID:    "ord_missing",
		Status:     string(domain.StatusProcessing),
		Action:     domain.ActionAccept,
		AdminNotes: "starting work",
	})
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Transition commit tests
// ---------------------------------------------------------------------------

func TestOrderService_Transition_AcceptAppliesAllFields(t *testing.T) {
	repo := newStubOrderRepo()
	svc, notifier, _ := newOrderFixture(repo)
	seedOrder(repo, "ord_1", "user_1")

	before := time.Now().UTC()
	order, err := svc.Transition(context.Background(), ports.TransitionInput{
		OrderID:    "ord_1",
		Status:     string(domain.StatusProcessing),
		Action:     domain.ActionAccept,
		AdminNotes: "kickoff next Monday",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Status != domain.StatusProcessing {
		t.Errorf("expected status %q, got %q", domain.StatusProcessing, order.Status)
	}
	if order.AdminNotes != "kickoff next Monday" {
		t.Errorf("expected notes carried over, got %q", order.AdminNotes)
	}
	if order.AdminResponseAt == nil || order.AdminResponseAt.Before(before) {
		t.Error("AdminResponseAt must be set to the transition time")
	}

	stored := repo.byID["ord_1"]
	if stored.Status != domain.StatusProcessing {
		t.Error("status must be committed to the store")
	}
	if stored.AdminResponseAt == nil {
		t.Error("response timestamp must be committed to the store")
	}

	if len(notifier.jobs) != 1 {
		t.Fatalf("expected 1 notification job, got %d", len(notifier.jobs))
	}
	job := notifier.jobs[0]
	if job.Action != domain.ActionAccept {
		t.Errorf("expected action %q, got %q", domain.ActionAccept, job.Action)
	}
	if job.Order.Status != domain.StatusProcessing {
		t.Error("notification must carry the post-transition order")
	}
}

func TestOrderService_Transition_PlainStatusChangeSkipsNotifications(t *testing.T) {
	repo := newStubOrderRepo()
	svc, notifier, _ := newOrderFixture(repo)
	seedOrder(repo, "ord_1", "user_1")

	// No action: a bare status correction needs neither notes nor fan-out.
	_, err := svc.Transition(context.Background(), ports.TransitionInput{
		OrderID: "ord_1",
		Status:  string(domain.StatusCancelled),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.jobs) != 0 {
		t.Errorf("expected no notification jobs, got %d", len(notifier.jobs))
	}
}

func TestOrderService_Transition_LastWriteWins(t *testing.T) {
	repo := newStubOrderRepo()
	svc, notifier, _ := newOrderFixture(repo)
	seedOrder(repo, "ord_1", "user_1")

	first, err := svc.Transition(context.Background(), ports.TransitionInput{
		OrderID:    "ord_1",
		Status:     string(domain.StatusProcessing),
		Action:     domain.ActionAccept,
		AdminNotes: "first response",
	})
	if err != nil {
		t.Fatalf("first transition: %v", err)
	}

	second, err := svc.Transition(context.Background(), ports.TransitionInput{
		OrderID:    "ord_1",
		Status:     string(domain.StatusCompleted),
		Action:     domain.ActionUpdate,
		AdminNotes: "all done",
	})
	if err != nil {
		t.Fatalf("second transition: %v", err)
	}

	stored := repo.byID["ord_1"]
	if stored.Status != domain.StatusCompleted {
		t.Errorf("second write must win: expected %q, got %q", domain.StatusCompleted, stored.Status)
	}
	if stored.AdminNotes != "all done" {
		t.Errorf("notes must be overwritten: got %q", stored.AdminNotes)
	}
	if !stored.AdminResponseAt.After(*first.AdminResponseAt) && !stored.AdminResponseAt.Equal(*first.AdminResponseAt) {
		t.Error("response timestamp must be overwritten by the later transition")
	}
	if second.AdminNotes != "all done" {
		t.Errorf("second result must reflect its own write, got %q", second.AdminNotes)
	}

	// Both transitions fan out; a duplicate submission means a duplicate email.
	if len(notifier.jobs) != 2 {
		t.Errorf("expected 2 notification jobs, got %d", len(notifier.jobs))
	}
}

func TestOrderService_Transition_UpdateErrorSurfaced(t *testing.T) {
	repo := newStubOrderRepo()
	repo.updateErr = errors.New("db unavailable")
	svc, notifier, _ := newOrderFixture(repo)
	seedOrder(repo, "ord_1", "user_1")

	_, err := svc.Transition(context.Background(), ports.TransitionInput{
		OrderID:    "ord_1",
		Status:     string(domain.StatusProcessing),
		Action:     domain.ActionAccept,
		AdminNotes: "notes",
	})
	if err == nil {
		t.Fatal("expected error when the store write fails")
	}
	if len(notifier.jobs) != 0 {
		t.Error("a failed write must not enqueue a notification")
	}
}

// ---------------------------------------------------------------------------
// Listing and RBAC scoping tests
// ---------------------------------------------------------------------------

func TestOrderService_List_AdminSeesAll(t *testing.T) {
	repo := newStubOrderRepo()
	svc, _, _ := newOrderFixture(repo)
	seedOrder(repo, "ord_1", "user_1")
	seedOrder(repo, "ord_2", "user_2")

	orders, err := svc.ListOrders(context.Background(), ports.Identity{UserID: "admin_1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 2 {
		t.Errorf("admin: expected 2 orders, got %d", len(orders))
	}
	if repo.lastListFilter.UserID != "" {
		t.Errorf("admin query must not pass an owner filter, got %q", repo.lastListFilter.UserID)
	}
}

func TestOrderService_List_UserSeesOwn(t *testing.T) {
	repo := newStubOrderRepo()
	svc, _, _ := newOrderFixture(repo)
	seedOrder(repo, "ord_1", "user_1")
	seedOrder(repo, "ord_2", "user_2")

	orders, err := svc.ListOrders(context.Background(), ports.Identity{UserID: "user_1", Role: domain.RoleUser})
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("user: expected 1 order, got %d", len(orders))
	}
	if orders[0].UserID != "user_1" {
		t.Errorf("user must only see own orders, got one for %q", orders[0].UserID)
	}
}

func TestOrderService_Get_UserCannotSeeOtherUsersOrder(t *testing.T) {
	repo := newStubOrderRepo()
	svc, _, _ := newOrderFixture(repo)
	seedOrder(repo, "ord_1", "user_1")

	_, err := svc.GetOrder(context.Background(), ports.Identity{UserID: "user_999", Role: domain.RoleUser}, "ord_1")
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound for foreign order, got %v", err)
	}
	if repo.lastFindFilter != "user_999" {
		t.Errorf("user query must pass its own id as owner filter, got %q", repo.lastFindFilter)
	}
}

func TestOrderService_Get_AdminSkipsOwnerFilter(t *testing.T) {
	repo := newStubOrderRepo()
	svc, _, _ := newOrderFixture(repo)
	seedOrder(repo, "ord_1", "user_1")

	_, err := svc.GetOrder(context.Background(), ports.Identity{UserID: "admin_1", Role: domain.RoleAdmin}, "ord_1")
	if err != nil {
		t.Fatalf("admin should see any order, got %v", err)
	}
	if repo.lastFindFilter != "" {
		t.Errorf("admin query must not pass an owner filter, got %q", repo.lastFindFilter)
	}
}
