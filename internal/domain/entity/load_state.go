package entity

type LoadStatus string

const (
	LoadStatusLoading LoadStatus = "loading"
	LoadStatusLoaded  LoadStatus = "loaded"
	LoadStatusFailed  LoadStatus = "failed"
)

// LoadState tells a load that is still running apart from one that
// returned zero doctors and one that failed.
type LoadState struct {
	Status LoadStatus
	Reason string
}

func Loading() LoadState {
	return LoadState{Status: LoadStatusLoading}
}

func Loaded() LoadState {
	return LoadState{Status: LoadStatusLoaded}
}

func Failed(reason string) LoadState {
	return LoadState{Status: LoadStatusFailed, Reason: reason}
}

func (s LoadState) IsLoading() bool {
	return s.Status == LoadStatusLoading
}

func (s LoadState) IsFailed() bool {
	return s.Status == LoadStatusFailed
}
