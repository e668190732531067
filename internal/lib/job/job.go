// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: tasks are enqueued through an
// asynq.Client and processed by workers run by an asynq.Server.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/tkratz/pokedex-api/internal/config"
	"github.com/tkratz/pokedex-api/internal/database"
)

// JobService holds the Asynq client (enqueue) and server (worker
// execution).
type JobService struct {
	Client *asynq.Client

	server *asynq.Server

	logger *zerolog.Logger

	seeder *database.Seeder
}

// NewJobService creates a JobService backed by the Redis instance from
// cfg.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// InitHandlers wires the dependencies task handlers need. The reseed
// task reloads the bootstrap dataset through the seeder.
func (j *JobService) InitHandlers(seeder *database.Seeder) {
	j.seeder = seeder
}

// Start registers task handlers and starts the background worker
// server.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskReseed, j.handleReseedTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
