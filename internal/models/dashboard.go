package models

// ClassCount is one bucket of the class-wise student distribution.
type ClassCount struct {
	Class string `json:"_id"`
	Count int64  `json:"count"`
}

// RecentActivity is a recently entered mark shown on the admin dashboard.
type RecentActivity struct {
	StudentName string `json:"studentName"`
	ExamName    string `json:"examName"`
	Subject     string `json:"subject"`
	CreatedAt   string `json:"createdAt"`
}

// DashboardStats are the aggregate counts computed by the backend.
type DashboardStats struct {
	TotalStudents      int64            `json:"totalStudents"`
	ActiveStudents     int64            `json:"activeStudents"`
	TotalExams         int64            `json:"totalExams"`
	AveragePerformance float64          `json:"averagePerformance"`
	ClassWiseCount     []ClassCount     `json:"classWiseCount"`
	RecentActivities   []RecentActivity `json:"recentActivities"`
}

// SubjectAverage summarises one subject across exams.
type SubjectAverage struct {
	Subject       string  `json:"_id"`
	AvgPercentage float64 `json:"avgPercentage"`
	TotalExams    int     `json:"totalExams"`
	HighestScore  float64 `json:"highestScore"`
	LowestScore   float64 `json:"lowestScore"`
}

// ExamPerformance summarises one exam across subjects.
type ExamPerformance struct {
	ExamName      string  `json:"_id"`
	AvgPercentage float64 `json:"avgPercentage"`
	ExamDate      string  `json:"examDate"`
	ExamType      string  `json:"examType"`
	Subjects      int     `json:"subjects"`
}

// ResultsSummary is the student's overall results view.
type ResultsSummary struct {
	SubjectWiseAverage  []SubjectAverage  `json:"subjectWiseAverage"`
	ExamWisePerformance []ExamPerformance `json:"examWisePerformance"`
	OverallGrade        string            `json:"overallGrade"`
	OverallPercentage   float64           `json:"overallPercentage"`
	Rank                string            `json:"rank"`
	Strengths           []string          `json:"strengths"`
	Improvements        []string          `json:"improvements"`
}
