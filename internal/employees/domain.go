package employees

import "time"

// Employee is a row of the emp table with joined display fields.
type Employee struct {
	EmpNo       int64    `json:"empno"`
	EName       string   `json:"ename"`
	Job         *string  `json:"job"`
	Mgr         *int64   `json:"mgr"`
	MgrName     *string  `json:"m_name"`
	HireDateStr *string  `json:"hiredate_str"`
	Sal         *float64 `json:"sal"`
	Comm        *float64 `json:"comm"`
	DeptNo      *int64   `json:"deptno"`
	DName       *string  `json:"dname"`
}

// EmployeeInput carries the writable fields for create and update.
type EmployeeInput struct {
	EName    string     `json:"ename" validate:"required"`
	Job      *string    `json:"job"`
	Mgr      *int64     `json:"mgr"`
	HireDate *time.Time `json:"hiredate"`
	Sal      *float64   `json:"sal"`
	Comm     *float64   `json:"comm"`
	DeptNo   *int64     `json:"deptno"`
}

// TreeNode is one row of the flattened organization hierarchy, ordered
// depth-first with siblings sorted by name.
type TreeNode struct {
	Status  int     `json:"status"`
	Level   int     `json:"level"`
	Title   string  `json:"title"`
	Icon    *string `json:"icon"`
	Value   int64   `json:"value"`
	Tooltip *string `json:"tooltip"`
	Link    *string `json:"link"`
	Mgr     *int64  `json:"mgr"`
	IsLeaf  bool    `json:"isLeaf"`
}

// SalaryEntry is a name/salary pair for the department salary comparison.
type SalaryEntry struct {
	EName string   `json:"ename"`
	Sal   *float64 `json:"sal"`
}

// SalaryStats compares one employee against their department.
type SalaryStats struct {
	Department *int64        `json:"department"`
	Target     string        `json:"target"`
	Data       []SalaryEntry `json:"data"`
}
