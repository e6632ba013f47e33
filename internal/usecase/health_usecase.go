package usecase

import (
	"context"
	"time"
)

// Probe checks one dependency.
type Probe func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	probes map[string]Probe
}

func NewHealthUsecase(probes map[string]Probe) HealthUsecase {
	return &healthUsecase{probes: probes}
}

// Check runs every probe with a short deadline. The bool is false when any
// probe failed.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result := map[string]string{"status": "ok"}
	healthy := true
	for name, probe := range u.probes {
		if err := probe(ctx); err != nil {
			result[name] = "down: " + err.Error()
			healthy = false
			continue
		}
		result[name] = "up"
	}
	if !healthy {
		result["status"] = "degraded"
	}
	return result, healthy
}
