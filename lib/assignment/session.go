package assignment

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"vms-console/lib/utils/optimistic"
	"vms-console/lib/vmsclient"
	"vms-console/models"
	vmsapimodels "vms-console/models/api/vms"
	wsmodels "vms-console/models/ws"
)

type Snapshot struct {
	JobID      string                `json:"job_id"`
	JobTitle   string                `json:"job_title"`
	State      State                 `json:"state"`
	Assigned   []vmsapimodels.Vendor `json:"assigned_vendors"`
	Unassigned []vmsapimodels.Vendor `json:"unassigned_vendors"`
}

// Session разбиение вендоров одной вакансии. Локальные переходы синхронные,
// подтверждения уходят в фоне через трекер
type Session struct {
	mu            sync.Mutex
	client        vmsclient.Provider
	tracker       *optimistic.Tracker
	notify        wsmodels.Notify
	universeLimit int

	state      State
	generation uint64
	jobID      string
	jobTitle   string
	assigned   []vmsapimodels.Vendor
	unassigned []vmsapimodels.Vendor
}

func NewSession(client vmsclient.Provider, tracker *optimistic.Tracker, notify wsmodels.Notify, universeLimit int) *Session {
	if notify == nil {
		notify = wsmodels.NopNotify
	}
	if universeLimit <= 0 {
		universeLimit = 1000
	}
	return &Session{
		client:        client,
		tracker:       tracker,
		notify:        notify,
		universeLimit: universeLimit,
		state:         StateClosed,
	}
}

func (s *Session) logger() *log.Entry {
	return log.
		WithField("job_id", s.jobID).
		WithField("generation", s.generation)
}

// transition вызывается под s.mu
func (s *Session) transition(to State) {
	if !IsTransitionAllowed(s.state, to) {
		s.logger().Warnf("недопустимый переход назначения %v -> %v", s.state, to)
	}
	s.state = to
}

// Open загружает вакансию и всех вендоров параллельно. При любой ошибке
// сессия остается закрытой без частичного состояния
func (s *Session) Open(ctx context.Context, jobID string) (Snapshot, error) {
	s.mu.Lock()
	if s.state != StateClosed {
		s.closeLocked()
	}
	s.generation++
	generation := s.generation
	s.jobID = jobID
	s.transition(StateLoading)
	s.mu.Unlock()

	var (
		job      *vmsapimodels.JobDescription
		universe *vmsapimodels.VendorListResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		job, err = s.client.GetJob(gctx, jobID)
		return err
	})
	g.Go(func() (err error) {
		universe, err = s.client.ListVendors(gctx, 1, s.universeLimit)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return Snapshot{}, ErrSuperseded
	}
	if err != nil {
		s.closeLocked()
		return Snapshot{}, errors.Wrap(err, "ошибка загрузки назначения")
	}
	s.jobTitle = job.Title
	s.assigned, s.unassigned = Partition(universe.Vendors, job.AssignedVendors)
	s.transition(StateReady)
	return s.snapshotLocked(), nil
}

func (s *Session) Assign(vendorID string) (Snapshot, bool, error) {
	return s.move(vendorID, true)
}

func (s *Session) Unassign(vendorID string) (Snapshot, bool, error) {
	return s.move(vendorID, false)
}

// move переносит вендора между списками. Если вендора нет в исходном списке,
// ничего не делает и запрос не отправляется
func (s *Session) move(vendorID string, toAssigned bool) (Snapshot, bool, error) {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return Snapshot{}, false, ErrNotReady
	}
	vendor, ok := s.moveLocked(vendorID, toAssigned)
	if !ok {
		snapshot := s.snapshotLocked()
		s.mu.Unlock()
		return snapshot, false, nil
	}
	jobID := s.jobID
	jobTitle := s.jobTitle
	generation := s.generation
	key := mutationKey(jobID, vendorID)
	seq := s.tracker.Begin(key)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	operation := "unassign"
	kind := "assignment.unassign"
	if toAssigned {
		operation = "assign"
		kind = "assignment.assign"
	}
	s.tracker.Go(seq, optimistic.Mutation{
		Kind: kind,
		Key:  key,
		Confirm: func(ctx context.Context) error {
			if toAssigned {
				return s.client.AssignVendor(ctx, jobID, vendorID)
			}
			return s.client.UnassignVendor(ctx, jobID, vendorID)
		},
		Compensate: func(seq uint64) bool {
			return s.compensate(generation, key, seq, vendorID, toAssigned)
		},
		Failed: func(err error, compensated bool) {
			inconsistency := &StateInconsistency{
				Operation:   operation,
				JobID:       jobID,
				VendorID:    vendorID,
				Compensated: compensated,
				Err:         err,
			}
			log.
				WithError(inconsistency).
				WithField("compensated", compensated).
				Warn("назначение не подтверждено")
			s.notify(models.ToastCodeStateConflict, conflictMessage(operation, vendor.Username, jobTitle, compensated))
		},
	})
	return snapshot, true, nil
}

// moveLocked вызывается под s.mu
func (s *Session) moveLocked(vendorID string, toAssigned bool) (vmsapimodels.Vendor, bool) {
	from, to := &s.unassigned, &s.assigned
	if !toAssigned {
		from, to = &s.assigned, &s.unassigned
	}
	idx := indexOf(*from, vendorID)
	if idx < 0 {
		return vmsapimodels.Vendor{}, false
	}
	vendor := (*from)[idx]
	*from = remove(*from, idx)
	*to = append(cloneVendors(*to), vendor)
	return vendor, true
}

// compensate откатывает перенос, если сессия та же и по вендору не было более поздних переносов
func (s *Session) compensate(generation uint64, key string, seq uint64, vendorID string, wasAssign bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation || s.state != StateReady {
		return false
	}
	if !s.tracker.IsLatest(key, seq) {
		return false
	}
	_, ok := s.moveLocked(vendorID, !wasAssign)
	return ok
}

func conflictMessage(operation, username, jobTitle string, compensated bool) string {
	verb := "assign"
	if operation == "unassign" {
		verb = "unassign"
	}
	if compensated {
		return fmt.Sprintf("Failed to %v vendor %v for %v. The change was reverted.", verb, username, jobTitle)
	}
	return fmt.Sprintf("Failed to %v vendor %v for %v. The list may be out of date, reopen it to refresh.", verb, username, jobTitle)
}

func mutationKey(jobID, vendorID string) string {
	return "assignment/" + jobID + "/" + vendorID
}

// Close отбрасывает состояние. Подтверждения в полете не отменяются
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	if s.state == StateClosed {
		return
	}
	s.transition(StateClosed)
	s.generation++
	s.jobTitle = ""
	s.assigned = nil
	s.unassigned = nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		JobID:      s.jobID,
		JobTitle:   s.jobTitle,
		State:      s.state,
		Assigned:   cloneVendors(s.assigned),
		Unassigned: cloneVendors(s.unassigned),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SendEmail уведомляет вендора о вакансии текущей сессии
func (s *Session) SendEmail(ctx context.Context, vendorID string) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrNotReady
	}
	if indexOf(s.assigned, vendorID) < 0 && indexOf(s.unassigned, vendorID) < 0 {
		s.mu.Unlock()
		return ErrUnknownUser
	}
	request := vmsapimodels.SendEmailRequest{
		VendorID: vendorID,
		JobID:    s.jobID,
		JobTitle: s.jobTitle,
	}
	s.mu.Unlock()
	return s.client.SendEmail(ctx, request)
}
