package employee

import "time"

// TrainingStatus は研修の進捗を表します。
type TrainingStatus string

const (
	TrainingOngoing TrainingStatus = "ongoing"
	TrainingDone    TrainingStatus = "done"
)

// ProjectStatus はプロジェクトへのアサイン状況を表します。
type ProjectStatus string

const (
	ProjectOnBench   ProjectStatus = "on-bench"
	ProjectInProject ProjectStatus = "in-project"
)

// Employee は社員レコードです。EmpID が主キーになります。
type Employee struct {
	EmpID         string
	Name          string
	Email         string
	Role          string
	JoiningDate   time.Time
	Training      TrainingStatus
	ProjectStatus *ProjectStatus
	ProjectName   *string
	DateAdded     time.Time
}

// Record は作成・更新時にクライアントから受け取る未検証の社員情報です。
// 値は検証前の文字列のまま保持し、未指定の項目は空文字になります。
type Record struct {
	Name          string
	EmpID         string
	Email         string
	Role          string
	JoiningDate   string
	Training      string
	ProjectStatus string
	ProjectName   string
}
