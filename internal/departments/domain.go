package departments

// Department is a row of the dept table.
type Department struct {
	DeptNo  int64   `json:"deptno"`
	DName   string  `json:"dname"`
	Loc     *string `json:"loc"`
	ImageID *int64  `json:"image_id,omitempty"`
}

// DepartmentInput carries writable fields.
type DepartmentInput struct {
	DName string  `json:"dname" validate:"required"`
	Loc   *string `json:"loc"`
}
