package tasks

import (
	"postagger.com/hpt/redis"
)

const TaggingsDB redis.DB = 0

type TaskStatus string

const (
	TaskStatusProcessing       TaskStatus = "processing"
	TaskStatusSubmitted        TaskStatus = "submitted"
	TaskStatusStarted          TaskStatus = "started"
	TaskStatusFailed           TaskStatus = "failed"
	TaskStatusCompletedSuccess TaskStatus = "completed - success"
	TaskStatusCompletedFailure TaskStatus = "completed - failure"
	TaskStatusCanceled         TaskStatus = "canceled"
)

func (s TaskStatus) Complete() bool {
	return s == TaskStatusCompletedSuccess || s == TaskStatusCompletedFailure || s == TaskStatusCanceled
}

func (s TaskStatus) Submitted() bool {
	return s == TaskStatusSubmitted || s == TaskStatusStarted || s == TaskStatusProcessing
}

// TaggingTask is the redis record of one tagging-evaluation run.
type TaggingTask struct {
	JobID        string              `json:"job_id"`
	Lang         string              `json:"lang"`
	Algorithm    string              `json:"algorithm"`
	TaskStatuses TaggingTaskStatuses `json:"task_statuses"`
}

type TaggingTaskStatuses struct {
	HPT TaggingTaskInfo `json:"hpt"`
}

type TaggingTaskInfo struct {
	ResultsFileKey string     `json:"results_file_key"`
	StartedAt      *string    `json:"started_at"`
	CompletedAt    *string    `json:"completed_at"`
	Attempts       int        `json:"attempts"`
	Status         TaskStatus `json:"status"`
	ErrorMessages  []string   `json:"error_messages"`
}

type TaggingTasks struct {
	client redis.Client
}

func (tasks TaggingTasks) Get(redisKey string) (*TaggingTask, error) {
	var task TaggingTask
	err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update mutates the record under the distributed lock so concurrent
// workers never clobber each other's status transitions.
func (tasks TaggingTasks) Update(redisKey string, updateFunc func(task *TaggingTask)) (err error) {
	releaseLock, err := tasks.client.Lock(redisKey)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = releaseLock()
			return
		}
		err = releaseLock()
	}()

	var task TaggingTask
	if err = tasks.client.GetDocument(redisKey, &task); err != nil {
		return err
	}
	updateFunc(&task)
	return tasks.client.SaveDocument(redisKey, &task)
}
