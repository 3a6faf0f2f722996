package usecase

import (
	"context"
	"errors"
	"slices"
	"sync"

	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var ErrViewClosed = errors.New("directory view closed")

// DirectoryView is the state owned by one open directory page: the fetched
// doctors, the specialities derived from them and the user's filter.
//
// The doctor list and specialities are written exactly once, by Load.
// Toggle and Clear only touch the selection.
type DirectoryView struct {
	log *logrus.Logger

	mu           sync.RWMutex
	state        entity.LoadState
	doctors      []entity.Doctor
	specialities []string
	selection    *entity.FilterSelection
	closed       bool

	ctx      context.Context
	cancel   context.CancelFunc
	loadOnce sync.Once
	loaded   chan struct{}
}

func NewDirectoryView(log *logrus.Logger) *DirectoryView {
	ctx, cancel := context.WithCancel(context.Background())
	return &DirectoryView{
		log:          log,
		state:        entity.Loading(),
		doctors:      []entity.Doctor{},
		specialities: []string{},
		selection:    entity.NewFilterSelection(),
		ctx:          ctx,
		cancel:       cancel,
		loaded:       make(chan struct{}),
	}
}

// Mount starts the view's single load in the background.
func (v *DirectoryView) Mount(source repository.DoctorSource) {
	go v.Load(v.ctx, source)
}

// Load fetches the doctor list once. Later calls return immediately.
// A failed fetch leaves the list empty and records the reason; there is no retry.
// Results arriving after Close are dropped.
func (v *DirectoryView) Load(ctx context.Context, source repository.DoctorSource) {
	v.loadOnce.Do(func() {
		defer close(v.loaded)

		ctx, cancel := mergeCancel(ctx, v.ctx)
		defer cancel()

		doctors, err := source.FetchDoctors(ctx)

		v.mu.Lock()
		defer v.mu.Unlock()

		if v.closed {
			v.log.Debug("Dropping doctor directory load for closed view")
			return
		}

		if err != nil {
			v.log.Warnf("Failed to load doctor directory: %+v", err)
			v.state = entity.Failed(err.Error())
			return
		}

		v.doctors = doctors
		v.specialities = entity.ExtractSpecialities(doctors)
		v.state = entity.Loaded()
		v.log.Infof("Doctor directory loaded: %d doctors, %d specialities", len(doctors), len(v.specialities))
	})
}

// Wait blocks until the load has settled or ctx is done.
func (v *DirectoryView) Wait(ctx context.Context) error {
	select {
	case <-v.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *DirectoryView) State() entity.LoadState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *DirectoryView) ToggleSpeciality(name string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}
	v.selection.Toggle(name)
	return nil
}

func (v *DirectoryView) ClearFilters() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}
	v.selection.Clear()
	return nil
}

// Page derives the visible doctors from the current list and selection,
// then applies order. The view's own state is not modified.
func (v *DirectoryView) Page(order entity.SortOrder) *entity.DirectoryPage {
	v.mu.RLock()
	defer v.mu.RUnlock()

	filtered := FilterDoctors(v.doctors, v.selection)

	return &entity.DirectoryPage{
		State:        v.state,
		Specialities: slices.Clone(v.specialities),
		Selection:    v.selection.Clone(),
		Doctors:      SortDoctors(filtered, order),
		Total:        len(v.doctors),
	}
}

// Close disposes the view and abandons any in-flight load. Safe to call more than once.
func (v *DirectoryView) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	v.cancel()
}

// mergeCancel returns a context derived from a that is also cancelled when b is.
func mergeCancel(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
