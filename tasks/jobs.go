package tasks

import (
	"postagger.com/hpt/redis"
)

const JobsDB redis.DB = 1

// JobTask is the caller-owned record grouping tagging runs; the worker
// only reads it to honor user cancellation.
type JobTask struct {
	UserCanceled bool `json:"user_canceled"`
}

type JobTasks struct {
	client redis.Client
}

func (tasks JobTasks) Get(redisKey string) (*JobTask, error) {
	var task JobTask
	err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
