package jobhandler

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"vms-console/lib/entitylist"
	"vms-console/lib/utils/optimistic"
	"vms-console/lib/workspace"
	"vms-console/models"
	jobapimodels "vms-console/models/api/job"
	vmsapimodels "vms-console/models/api/vms"
)

type Provider interface {
	List(ctx context.Context, ws *workspace.Workspace, filter jobapimodels.JobFilter) (entitylist.Page[vmsapimodels.JobDescription], error)
	// Filtered весь отфильтрованный список без пагинации (для выгрузок)
	Filtered(ctx context.Context, ws *workspace.Workspace, search string) ([]vmsapimodels.JobDescription, error)
	Get(ctx context.Context, ws *workspace.Workspace, id string) (vmsapimodels.JobDescription, error)
	Create(ctx context.Context, ws *workspace.Workspace, data jobapimodels.JobData) error
	Update(ctx context.Context, ws *workspace.Workspace, id string, data jobapimodels.JobUpdate) error
	Delete(ctx context.Context, ws *workspace.Workspace, id string) error
	// ToggleVerified меняет признак в кэше сразу, подтверждение уходит в фоне
	ToggleVerified(ctx context.Context, ws *workspace.Workspace, id string) (vmsapimodels.JobDescription, error)
}

var Instance Provider

func NewHandler(perPage int) {
	Instance = NewProvider(perPage)
}

func NewProvider(perPage int) Provider {
	if perPage <= 0 {
		perPage = 5
	}
	return impl{
		perPage: perPage,
	}
}

type impl struct {
	perPage int
}

func titleField(job vmsapimodels.JobDescription) string {
	return job.Title
}

func (i impl) load(ctx context.Context, ws *workspace.Workspace, refresh bool) ([]vmsapimodels.JobDescription, error) {
	var (
		list []vmsapimodels.JobDescription
		err  error
	)
	if refresh {
		list, err = ws.Jobs.Refresh(ctx, ws.ListQuery())
	} else {
		list, err = ws.Jobs.EnsureLoaded(ctx, ws.ListQuery())
	}
	if err != nil {
		log.
			WithField("session_id", ws.SessionID).
			WithError(err).
			Warn("ошибка загрузки списка вакансий")
		ws.Notify(models.ToastCodeListLoadFailed, "Error fetching job descriptions")
		return nil, errors.Wrap(err, "ошибка загрузки списка вакансий")
	}
	return list, nil
}

func (i impl) List(ctx context.Context, ws *workspace.Workspace, filter jobapimodels.JobFilter) (entitylist.Page[vmsapimodels.JobDescription], error) {
	list, err := i.load(ctx, ws, filter.Refresh)
	if err != nil {
		return entitylist.Page[vmsapimodels.JobDescription]{}, err
	}
	page, limit := filter.GetPage(i.perPage)
	return entitylist.View(list, filter.Search, page, limit, titleField), nil
}

func (i impl) Filtered(ctx context.Context, ws *workspace.Workspace, search string) ([]vmsapimodels.JobDescription, error) {
	list, err := i.load(ctx, ws, false)
	if err != nil {
		return nil, err
	}
	return entitylist.Filter(list, search, titleField), nil
}

func (i impl) Get(ctx context.Context, ws *workspace.Workspace, id string) (vmsapimodels.JobDescription, error) {
	job, err := ws.Client.GetJob(ctx, id)
	if err != nil {
		return vmsapimodels.JobDescription{}, errors.Wrap(err, "ошибка получения вакансии")
	}
	return *job, nil
}

// refresh полная перезагрузка после изменения. Ошибка не откатывает изменение
func (i impl) refresh(ctx context.Context, ws *workspace.Workspace) {
	if _, err := ws.Jobs.Refresh(ctx, ws.ListQuery()); err != nil {
		log.
			WithField("session_id", ws.SessionID).
			WithError(err).
			Warn("ошибка обновления списка вакансий")
		ws.Notify(models.ToastCodeListLoadFailed, "Error fetching job descriptions")
	}
}

func (i impl) Create(ctx context.Context, ws *workspace.Workspace, data jobapimodels.JobData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	request := vmsapimodels.JobCreateRequest{
		Title:       data.Title,
		Description: data.Description,
	}
	if err := ws.Client.CreateJob(ctx, request); err != nil {
		return errors.Wrap(err, "ошибка создания вакансии")
	}
	i.refresh(ctx, ws)
	ws.Notify(models.ToastCodeOperationDone, "Job description created successfully")
	return nil
}

func (i impl) Update(ctx context.Context, ws *workspace.Workspace, id string, data jobapimodels.JobUpdate) error {
	if err := data.Validate(); err != nil {
		return err
	}
	current, err := i.Get(ctx, ws, id)
	if err != nil {
		return err
	}
	verified := current.Verified
	if data.Verified != nil {
		verified = *data.Verified
	}
	request := vmsapimodels.JobUpdateRequest{
		Title:           data.Title,
		Description:     data.Description,
		Verified:        verified,
		AssignedVendors: current.AssignedVendors,
	}
	if err = ws.Client.UpdateJob(ctx, id, request); err != nil {
		return errors.Wrap(err, "ошибка изменения вакансии")
	}
	i.refresh(ctx, ws)
	ws.Notify(models.ToastCodeOperationDone, "Job description updated successfully")
	return nil
}

func (i impl) Delete(ctx context.Context, ws *workspace.Workspace, id string) error {
	if err := ws.Client.DeleteJob(ctx, id); err != nil {
		return errors.Wrap(err, "ошибка удаления вакансии")
	}
	i.refresh(ctx, ws)
	ws.Notify(models.ToastCodeOperationDone, "Job description deleted successfully")
	return nil
}

func (i impl) ToggleVerified(ctx context.Context, ws *workspace.Workspace, id string) (vmsapimodels.JobDescription, error) {
	if _, err := i.load(ctx, ws, false); err != nil {
		return vmsapimodels.JobDescription{}, err
	}
	key := "job/" + id
	var (
		seq      uint64
		verified bool
	)
	updated, ok := ws.Jobs.Update(id, func(job *vmsapimodels.JobDescription) {
		job.Verified = !job.Verified
		verified = job.Verified
		seq = ws.Tracker.Begin(key)
	})
	if !ok {
		return vmsapimodels.JobDescription{}, errors.Wrapf(entitylist.ErrNotFound, "вакансия %v", id)
	}
	ws.Tracker.Go(seq, optimistic.Mutation{
		Kind: "job.verified",
		Key:  key,
		Confirm: func(ctx context.Context) error {
			return ws.Client.UpdateJobStatus(ctx, id, verified)
		},
		Compensate: func(seq uint64) bool {
			return compensateVerified(ws, key, id, seq, verified)
		},
		Failed: func(err error, compensated bool) {
			log.
				WithField("job_id", id).
				WithField("compensated", compensated).
				WithError(err).
				Error("ошибка изменения статуса вакансии")
			ws.Notify(models.ToastCodeStateConflict, "Error updating job status")
		},
	})
	return updated, nil
}

// compensateVerified возвращает прежнее значение, если после seq признак не переключали
func compensateVerified(ws *workspace.Workspace, key, id string, seq uint64, verified bool) bool {
	reverted := false
	ws.Jobs.Update(id, func(job *vmsapimodels.JobDescription) {
		if !ws.Tracker.IsLatest(key, seq) || job.Verified != verified {
			return
		}
		job.Verified = !verified
		reverted = true
	})
	return reverted
}
