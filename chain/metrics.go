package chain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chainStepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redistrict_chain_steps_total",
		Help: "Cumulative number of chain steps emitted, across all chains.",
	})
	chainAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redistrict_chain_accepted_total",
		Help: "Cumulative number of accepted chain steps.",
	})
	chainSelfLoopsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redistrict_chain_self_loops_total",
		Help: "Cumulative number of self-looped (rejected) chain steps.",
	})
	chainProposalFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redistrict_chain_proposal_failures_total",
		Help: "Cumulative number of proposals that found no valid move.",
	})
)
