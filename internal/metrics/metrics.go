package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	GamesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "codebreak_games_created_total",
		Help: "Games created",
	})
	GuessesEvaluated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "codebreak_guesses_total",
		Help: "Guesses evaluated and recorded",
	})
	GamesSolved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "codebreak_games_solved_total",
		Help: "Games ended by a winning guess",
	})
	GamesExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "codebreak_games_expired_total",
		Help: "Games retired by the 300s deadline",
	})
)

func init() {
	prometheus.MustRegister(GamesCreated, GuessesEvaluated, GamesSolved, GamesExpired)
}
