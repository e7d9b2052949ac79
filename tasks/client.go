package tasks

import (
	"postagger.com/hpt/redis"
)

type Client struct {
	Taggings TaggingTasks
	Jobs     JobTasks
}

// NewClient is a preferred way for working with task records
func NewClient() (Client, error) {
	taggingsRedisClient, err := redis.NewClient(TaggingsDB)
	if err != nil {
		return Client{}, err
	}
	jobsRedisClient, err := redis.NewClient(JobsDB)
	if err != nil {
		return Client{}, err
	}
	return Client{
		Taggings: TaggingTasks{client: taggingsRedisClient},
		Jobs:     JobTasks{client: jobsRedisClient},
	}, nil
}

func (client *Client) Close() {
	_ = client.Taggings.client.Close()
	_ = client.Jobs.client.Close()
}
