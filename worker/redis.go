package worker

import (
	"postagger.com/hpt/tasks"
	"fmt"
)

type redisTransactions interface {
	getTaggingTask(redisKey string) (*tasks.TaggingTask, error)
	getJobTask(task *Task) (*tasks.JobTask, error)
	onTaskStarted(task *Task) error
	onTaskCancelled(task *Task, errorMessages ...string) error
	onTaskExceededRetries(task *Task, maxRetries int) error
	onTaskFailedWithError(task *Task, err error) error
	onTaskComplete(task *Task) error
	close()
}

type redisClientWrapper struct {
	tasksClient *tasks.Client
}

func (wrapper *redisClientWrapper) close() {
	wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) onTaskStarted(task *Task) error {
	err := wrapper.tasksClient.Taggings.Update(task.redisKey, func(task *tasks.TaggingTask) {
		task.TaskStatuses.HPT.Status = tasks.TaskStatusStarted
		task.TaskStatuses.HPT.Attempts += 1
		task.TaskStatuses.HPT.StartedAt = getFormattedNow()
		task.TaskStatuses.HPT.CompletedAt = nil
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskCancelled(task *Task, errorMessages ...string) error {
	err := wrapper.tasksClient.Taggings.Update(task.redisKey, func(taggingTask *tasks.TaggingTask) {
		taggingTask.TaskStatuses.HPT.Status = tasks.TaskStatusCanceled
		taggingTask.TaskStatuses.HPT.StartedAt = getFormattedNow()
		taggingTask.TaskStatuses.HPT.CompletedAt = getFormattedNow()
		taggingTask.TaskStatuses.HPT.Attempts += 1
		taggingTask.TaskStatuses.HPT.ErrorMessages = append(
			taggingTask.TaskStatuses.HPT.ErrorMessages,
			errorMessages...,
		)
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskExceededRetries(task *Task, maxRetries int) error {
	return wrapper.tasksClient.Taggings.Update(task.redisKey, func(taggingTask *tasks.TaggingTask) {
		taggingTask.TaskStatuses.HPT.Status = tasks.TaskStatusCompletedFailure
		taggingTask.TaskStatuses.HPT.StartedAt = getFormattedNow()
		taggingTask.TaskStatuses.HPT.CompletedAt = getFormattedNow()
		taggingTask.TaskStatuses.HPT.Attempts += 1
		taggingTask.TaskStatuses.HPT.ErrorMessages = append(
			taggingTask.TaskStatuses.HPT.ErrorMessages,
			fmt.Sprintf(
				"Task has exceeded retries. (Attempts: %d, max retries: %d )",
				taggingTask.TaskStatuses.HPT.Attempts,
				maxRetries,
			),
		)
	})
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(task *Task, err error) error {
	return wrapper.tasksClient.Taggings.Update(task.redisKey, func(taggingTask *tasks.TaggingTask) {
		taggingTask.TaskStatuses.HPT.Status = tasks.TaskStatusFailed
		taggingTask.TaskStatuses.HPT.CompletedAt = getFormattedNow()
		taggingTask.TaskStatuses.HPT.ErrorMessages = append(taggingTask.TaskStatuses.HPT.ErrorMessages, err.Error())
	})
}

func (wrapper *redisClientWrapper) onTaskComplete(task *Task) error {
	return wrapper.tasksClient.Taggings.Update(task.redisKey, func(taggingTask *tasks.TaggingTask) {
		if !taggingTask.TaskStatuses.HPT.Status.Complete() {
			taggingTask.TaskStatuses.HPT.Status = tasks.TaskStatusCompletedSuccess
		}
		taggingTask.TaskStatuses.HPT.CompletedAt = getFormattedNow()
		taggingTask.TaskStatuses.HPT.ResultsFileKey = getResultsFileKey(task)
	})
}

func (wrapper *redisClientWrapper) getTaggingTask(redisKey string) (*tasks.TaggingTask, error) {
	return wrapper.tasksClient.Taggings.Get(redisKey)
}

func (wrapper *redisClientWrapper) getJobTask(task *Task) (*tasks.JobTask, error) {
	return wrapper.tasksClient.Jobs.Get(task.taggingTask.JobID)
}
