package analyze

import (
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"hrpulse/internal/dataset"
	"hrpulse/internal/report"
)

// Grouping columns the factor job uses when present. Their absence degrades
// the matching sheet to header-only instead of failing the run.
const (
	colSatisfaction = "satisfaction_level"
	colDepartment   = "Department"
	colSalary       = "salary"
	colPromotion    = "promotion_last_5years"
)

// FactorReport holds the five grouped attrition-rate tables.
type FactorReport struct {
	SatisfactionByLeft report.Table
	Department         report.Table
	Salary             report.Table
	Promotion          report.Table
	DeptSalary         report.Table
}

// Sheets returns the workbook layout in its fixed order.
func (r FactorReport) Sheets() []report.Sheet {
	return []report.Sheet{
		{Name: "satisfaction_by_left", Table: r.SatisfactionByLeft},
		{Name: "department_attrition", Table: r.Department},
		{Name: "salary_attrition", Table: r.Salary},
		{Name: "promo_attrition", Table: r.Promotion},
		{Name: "dept_salary_attrition", Table: r.DeptSalary},
	}
}

// group is one grouping key with its population and attrition mean.
type group struct {
	keys  []string
	count int
	rate  float64
}

// Factors computes attrition rates grouped by department, salary, promotion
// and the department×salary cross. The target column is required.
func Factors(ds *dataset.Dataset) (*FactorReport, error) {
	if !ds.HasColumn(dataset.Target) {
		return nil, dataset.MissingTarget(ds)
	}
	left := ds.Float(dataset.Target)

	r := &FactorReport{
		SatisfactionByLeft: satisfactionByLeft(ds, left),
		Department:         singleFactor(ds, left, colDepartment, "Department", true),
		Salary:             singleFactor(ds, left, colSalary, "salary", true),
		Promotion:          singleFactor(ds, left, colPromotion, "promotion_last_5years", false),
		DeptSalary:         deptSalary(ds, left),
	}
	return r, nil
}

// satisfactionByLeft reports mean satisfaction for stayed vs left.
func satisfactionByLeft(ds *dataset.Dataset, left []float64) report.Table {
	t := report.Empty("left", "avg_satisfaction")
	if !ds.HasColumn(colSatisfaction) {
		return t
	}
	sat := ds.Float(colSatisfaction)

	byValue := make(map[int][]float64)
	for i, v := range left {
		byValue[int(v)] = append(byValue[int(v)], sat[i])
	}
	values := make([]int, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Ints(values)
	for _, v := range values {
		t.AddRow(v, stat.Mean(byValue[v], nil))
	}
	return t
}

// singleFactor groups the target mean by one categorical column. Grouped
// rows are sorted descending by rate when sortByRate is set, otherwise by
// key, and always carry the group size so totals can be reconstructed.
func singleFactor(ds *dataset.Dataset, left []float64, col, header string, sortByRate bool) report.Table {
	t := report.Empty(header, "employee_count", "attrition_rate")
	if !ds.HasColumn(col) {
		return t
	}

	groups := groupRates(left, ds.Strings(col))
	orderGroups(groups, sortByRate)
	for _, g := range groups {
		t.AddRow(keyCell(g.keys[0]), g.count, g.rate)
	}
	return t
}

// deptSalary groups the target mean by the department and salary cross.
func deptSalary(ds *dataset.Dataset, left []float64) report.Table {
	t := report.Empty("Department", "salary", "employee_count", "attrition_rate")
	if !ds.HasColumn(colDepartment) || !ds.HasColumn(colSalary) {
		return t
	}

	groups := groupRates(left, ds.Strings(colDepartment), ds.Strings(colSalary))
	orderGroups(groups, true)
	for _, g := range groups {
		t.AddRow(g.keys[0], g.keys[1], g.count, g.rate)
	}
	return t
}

// groupRates computes the mean of left per combination of key columns.
func groupRates(left []float64, keyCols ...[]string) []group {
	type agg struct {
		keys  []string
		sum   float64
		count int
	}
	byKey := make(map[string]*agg)
	for i := range left {
		keys := make([]string, len(keyCols))
		for k, col := range keyCols {
			keys[k] = col[i]
		}
		id := joinKeys(keys)
		a, ok := byKey[id]
		if !ok {
			a = &agg{keys: keys}
			byKey[id] = a
		}
		a.sum += left[i]
		a.count++
	}

	groups := make([]group, 0, len(byKey))
	for _, a := range byKey {
		groups = append(groups, group{
			keys:  a.keys,
			count: a.count,
			rate:  a.sum / float64(a.count),
		})
	}
	return groups
}

// orderGroups sorts descending by rate (ties by key) or ascending by key.
func orderGroups(groups []group, byRate bool) {
	sort.Slice(groups, func(i, j int) bool {
		if byRate && groups[i].rate != groups[j].rate {
			return groups[i].rate > groups[j].rate
		}
		return joinKeys(groups[i].keys) < joinKeys(groups[j].keys)
	})
}

func joinKeys(keys []string) string {
	id := keys[0]
	for _, k := range keys[1:] {
		id += "\x1f" + k
	}
	return id
}

// keyCell preserves numeric group keys (the promotion flag) as numbers in
// the spreadsheet.
func keyCell(key string) interface{} {
	if n, err := strconv.Atoi(key); err == nil {
		return n
	}
	return key
}

// BarData extracts chart inputs (labels and rates) from a grouped table.
// nameCols columns are joined with "/" for cross-factor labels; the rate is
// always the last column.
func BarData(t report.Table, nameCols int) (names []string, rates []float64) {
	for _, row := range t.Rows {
		label := ""
		for i := 0; i < nameCols; i++ {
			if i > 0 {
				label += "/"
			}
			switch v := row[i].(type) {
			case string:
				label += v
			case int:
				label += strconv.Itoa(v)
			}
		}
		names = append(names, label)
		rates = append(rates, row[len(row)-1].(float64))
	}
	return names, rates
}
