package usecase

import (
	"context"
	"errors"

	"doctor-directory/internal/converter"
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/domain/repository"
	"doctor-directory/internal/service"

	"github.com/sirupsen/logrus"
)

type DirectoryUsecase interface {
	GetDirectory(ctx context.Context, sessionID string, query *dto.DirectoryQuery) (*dto.DirectoryResponse, error)
	ToggleSpeciality(ctx context.Context, sessionID string, req *dto.ToggleSpecialityRequest, query *dto.DirectoryQuery) (*dto.DirectoryResponse, error)
	ClearFilters(ctx context.Context, sessionID string, query *dto.DirectoryQuery) (*dto.DirectoryResponse, error)
	CloseSession(ctx context.Context, sessionID string)
}

type directoryUsecase struct {
	log      *logrus.Logger
	source   repository.DoctorSource
	sessions *service.SessionRegistry[*DirectoryView]
}

func NewDirectoryUsecase(
	log *logrus.Logger,
	source repository.DoctorSource,
	sessions *service.SessionRegistry[*DirectoryView],
) DirectoryUsecase {
	return &directoryUsecase{
		log:      log,
		source:   source,
		sessions: sessions,
	}
}

// GetDirectory renders the session's view, mounting a new one (and starting
// its load) on the session's first visit.
func (u *directoryUsecase) GetDirectory(ctx context.Context, sessionID string, query *dto.DirectoryQuery) (*dto.DirectoryResponse, error) {
	view := u.viewFor(sessionID)
	return converter.DirectoryPageToResponse(view.Page(sortOrder(query)), query), nil
}

// ToggleSpeciality flips one speciality in the session's selection. A session
// without a view (evicted, or issued before a restart) gets a fresh one; the
// selection is applied once its load settles.
func (u *directoryUsecase) ToggleSpeciality(ctx context.Context, sessionID string, req *dto.ToggleSpecialityRequest, query *dto.DirectoryQuery) (*dto.DirectoryResponse, error) {
	view, err := u.mutate(sessionID, func(v *DirectoryView) error {
		return v.ToggleSpeciality(req.Speciality)
	})
	if err != nil {
		u.log.Warnf("Failed to toggle speciality: %+v", err)
		return nil, err
	}

	return converter.DirectoryPageToResponse(view.Page(sortOrder(query)), query), nil
}

func (u *directoryUsecase) ClearFilters(ctx context.Context, sessionID string, query *dto.DirectoryQuery) (*dto.DirectoryResponse, error) {
	view, err := u.mutate(sessionID, func(v *DirectoryView) error {
		return v.ClearFilters()
	})
	if err != nil {
		u.log.Warnf("Failed to clear filters: %+v", err)
		return nil, err
	}

	return converter.DirectoryPageToResponse(view.Page(sortOrder(query)), query), nil
}

func (u *directoryUsecase) CloseSession(ctx context.Context, sessionID string) {
	u.sessions.Remove(sessionID)
}

func (u *directoryUsecase) viewFor(sessionID string) *DirectoryView {
	view, created := u.sessions.GetOrCreate(sessionID, func() *DirectoryView {
		return NewDirectoryView(u.log)
	})
	if created {
		u.log.Debugf("Mounting directory view for session %s", sessionID)
		view.Mount(u.source)
	}
	return view
}

// mutate applies fn to the session's view. If the view is swept between
// lookup and fn, the registry has already dropped it, so one retry mounts a new view.
func (u *directoryUsecase) mutate(sessionID string, fn func(*DirectoryView) error) (*DirectoryView, error) {
	view := u.viewFor(sessionID)
	err := fn(view)
	if errors.Is(err, ErrViewClosed) {
		view = u.viewFor(sessionID)
		err = fn(view)
	}
	return view, err
}

func sortOrder(query *dto.DirectoryQuery) entity.SortOrder {
	if query == nil {
		return entity.SortNone
	}
	return entity.ParseSortOrder(query.Sort)
}
