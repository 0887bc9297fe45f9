// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "td"

// Recorder holds the simulation's Prometheus collectors. A nil *Recorder is
// valid and records nothing, so systems can run without metrics.
type Recorder struct {
	Attacks             *prometheus.CounterVec
	EnemiesSpawned      prometheus.Counter
	EnemiesKilled       prometheus.Counter
	EnemiesLeaked       prometheus.Counter
	ExperienceGained    prometheus.Counter
	TowerLevelUps       prometheus.Counter
	ProjectileRetargets prometheus.Counter
	WaveNumber          prometheus.Gauge
	WaveStatus          prometheus.Gauge
	LiveEnemies         prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		Attacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attacks_total",
			Help:      "Attacks fired by towers, by attack kind.",
		}, []string{"attack"}),
		EnemiesSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enemies_spawned_total",
			Help:      "Enemies spawned by the wave manager.",
		}),
		EnemiesKilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enemies_killed_total",
			Help:      "Enemies whose health reached zero.",
		}),
		EnemiesLeaked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enemies_leaked_total",
			Help:      "Enemies that reached the end of their track.",
		}),
		ExperienceGained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "experience_gained_total",
			Help:      "Experience points awarded to towers.",
		}),
		TowerLevelUps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tower_level_ups_total",
			Help:      "Tower level changes.",
		}),
		ProjectileRetargets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projectiles_retargeted_total",
			Help:      "Projectiles that switched to a new target after losing theirs.",
		}),
		WaveNumber: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wave_number",
			Help:      "1-based number of the current wave.",
		}),
		WaveStatus: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wave_status",
			Help:      "Status of the current wave (0 pending, 1 in progress, 2 waiting for clear, 3 finished).",
		}),
		LiveEnemies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_enemies",
			Help:      "Enemies currently alive on the field.",
		}),
	}

	for _, c := range []prometheus.Collector{
		r.Attacks, r.EnemiesSpawned, r.EnemiesKilled, r.EnemiesLeaked,
		r.ExperienceGained, r.TowerLevelUps, r.ProjectileRetargets,
		r.WaveNumber, r.WaveStatus, r.LiveEnemies,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) Attack(kind string) {
	if r != nil {
		r.Attacks.WithLabelValues(kind).Inc()
	}
}

func (r *Recorder) EnemySpawned() {
	if r != nil {
		r.EnemiesSpawned.Inc()
	}
}

func (r *Recorder) EnemyKilled() {
	if r != nil {
		r.EnemiesKilled.Inc()
	}
}

func (r *Recorder) EnemyLeaked() {
	if r != nil {
		r.EnemiesLeaked.Inc()
	}
}

func (r *Recorder) Experience(amount uint64) {
	if r != nil {
		r.ExperienceGained.Add(float64(amount))
	}
}

func (r *Recorder) LevelUp() {
	if r != nil {
		r.TowerLevelUps.Inc()
	}
}

func (r *Recorder) Retarget() {
	if r != nil {
		r.ProjectileRetargets.Inc()
	}
}

// Wave publishes the wave number and status code.
func (r *Recorder) Wave(number, status int) {
	if r != nil {
		r.WaveNumber.Set(float64(number))
		r.WaveStatus.Set(float64(status))
	}
}

func (r *Recorder) Live(n int) {
	if r != nil {
		r.LiveEnemies.Set(float64(n))
	}
}
