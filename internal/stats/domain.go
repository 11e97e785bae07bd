package stats

// CountStat is a single aggregate count.
type CountStat struct {
	Count int64 `json:"count"`
}

// AvgSalStat is the company-wide average salary, rounded.
type AvgSalStat struct {
	AvgSal float64 `json:"avg_sal"`
}

// DeptCount is an employee headcount per department.
type DeptCount struct {
	DName string `json:"dname"`
	Count int64  `json:"count"`
}

// JobCount is an employee headcount per job title.
type JobCount struct {
	Job   string `json:"job"`
	Count int64  `json:"count"`
}

// DeptTotal is a salary sum per department.
type DeptTotal struct {
	DName string  `json:"dname"`
	Total float64 `json:"total"`
}

// JobTotal is a salary sum per job title.
type JobTotal struct {
	Job   string  `json:"job"`
	Total float64 `json:"total"`
}
