package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Project and Task are owned elsewhere (project management service); this
// backend keeps a read model of them to label statistics summaries.
type Project struct {
	Id         string    `json:"id" gorm:"type:char(96);primaryKey"`
	Name       string    `json:"name" gorm:"type:varchar(255)"`
	CreateTime time.Time `json:"create_time" gorm:"datetime;autoCreateTime"`
	UpdateTime time.Time `json:"update_time" gorm:"datetime;autoCreateTime;autoUpdateTime"`
}

type Task struct {
	Id         string    `json:"id" gorm:"type:char(96);primaryKey"`
	Name       string    `json:"name" gorm:"type:varchar(255)"`
	ProjectId  string    `json:"project_id" gorm:"type:char(96);index"`
	CreateTime time.Time `json:"create_time" gorm:"datetime;autoCreateTime"`
	UpdateTime time.Time `json:"update_time" gorm:"datetime;autoCreateTime;autoUpdateTime"`
}

func (t *Task) Project() (*Project, error) {
	if t.ProjectId == "" {
		return nil, nil
	}
	return GetProjectById(t.ProjectId)
}

func GetProjectById(id string) (*Project, error) {
	var project Project
	if err := DB.Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func GetTaskById(id string) (*Task, error) {
	var task Task
	if err := DB.Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// TaskInfo is the display metadata the rollup needs for one task.
type TaskInfo struct {
	Name        string
	ProjectId   string
	ProjectName string
}

// GetTaskInfos resolves task ids to display metadata in one query. Ids with
// no matching task are absent from the result, not an error.
func GetTaskInfos(ids []string) (map[string]TaskInfo, error) {
	if len(ids) == 0 {
		return map[string]TaskInfo{}, nil
	}

	type row struct {
		Id          string
		Name        string
		ProjectId   string
		ProjectName string
	}
	var rows []row
	err := DB.Model(&Task{}).
		Select("tasks.id AS id, tasks.name AS name, tasks.project_id AS project_id, projects.name AS project_name").
		Joins("LEFT JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	infos := make(map[string]TaskInfo, len(rows))
	for _, r := range rows {
		infos[r.Id] = TaskInfo{
			Name:        r.Name,
			ProjectId:   r.ProjectId,
			ProjectName: r.ProjectName,
		}
	}
	return infos, nil
}
