package domain

import (
	"strconv"
	"strings"
)

// EntityType identifies one of the closed set of record types the agent can
// operate on.
type EntityType string

const (
	EntityRecruitmentJob         EntityType = "recruitmentJob"
	EntityRecruitmentApplication EntityType = "recruitmentApplication"
	EntityLeaveRequest           EntityType = "leaveRequest"
	EntityExpenseClaim           EntityType = "expenseClaim"
	EntityProject                EntityType = "project"
)

// EntityDescriptor binds an entity type to its human-readable label, backing
// collection, classifier keywords, payload builder, and the fields required
// to create a record.
type EntityDescriptor struct {
	Type           EntityType
	Label          string
	Collection     string
	Keywords       []string
	RequiredFields []string
	BuildPayload   func(facts map[string]any) map[string]any
}

// Descriptors is evaluated in declaration order by the entity classifier.
// Keyword sets overlap ("job" matches more than one phrasing), so the order
// here is the tie-break and must not be reshuffled.
var Descriptors = []EntityDescriptor{
	{
		Type:           EntityRecruitmentJob,
		Label:          "recruitment job",
		Collection:     "recruitment_jobs",
		Keywords:       []string{"recruitment job", "job", "requisition", "role", "opening"},
		RequiredFields: []string{"title"},
		BuildPayload:   buildRecruitmentJob,
	},
	{
		Type:           EntityRecruitmentApplication,
		Label:          "recruitment application",
		Collection:     "recruitment_applications",
		Keywords:       []string{"application", "applicant", "candidate"},
		RequiredFields: []string{"job_id", "candidate_name"},
		BuildPayload:   buildRecruitmentApplication,
	},
	{
		Type:           EntityLeaveRequest,
		Label:          "leave request",
		Collection:     "leave_requests",
		Keywords:       []string{"leave", "time off", "vacation", "pto"},
		RequiredFields: []string{"employee_name", "leave_type", "start_date", "end_date"},
		BuildPayload:   buildLeaveRequest,
	},
	{
		Type:           EntityExpenseClaim,
		Label:          "expense claim",
		Collection:     "expense_claims",
		Keywords:       []string{"expense", "claim", "reimbursement"},
		RequiredFields: []string{"employee_name", "amount"},
		BuildPayload:   buildExpenseClaim,
	},
	{
		Type:           EntityProject,
		Label:          "project",
		Collection:     "projects",
		Keywords:       []string{"project", "initiative"},
		RequiredFields: []string{"name"},
		BuildPayload:   buildProject,
	},
}

func buildRecruitmentJob(facts map[string]any) map[string]any {
	p := map[string]any{}
	put(p, "title", pick(facts, "title", "job_title", "position"))
	put(p, "department", pick(facts, "department", "dept", "team"))
	put(p, "hiring_manager", pick(facts, "hiring_manager", "hiringmanager", "hiringManager", "manager"))
	put(p, "status", pick(facts, "status", "state"))
	putNumber(p, "openings", pick(facts, "openings", "headcount"))
	putNumber(p, "candidates", pick(facts, "candidates", "candidate_count"))
	putNumber(p, "avg_time_to_fill", pick(facts, "avg_time_to_fill", "avgtimetofill", "avgTimeToFill", "time_to_fill"))
	putNumber(p, "offer_acceptance", pick(facts, "offer_acceptance", "offeracceptance", "offerAcceptance", "acceptance_rate"))
	putNumber(p, "diversity_ratio", pick(facts, "diversity_ratio", "diversityratio", "diversityRatio", "diversity"))
	return p
}

func buildRecruitmentApplication(facts map[string]any) map[string]any {
	p := map[string]any{}
	put(p, "job_id", pick(facts, "job_id", "jobid", "jobId", "job"))
	put(p, "candidate_name", pick(facts, "candidate_name", "candidatename", "candidateName", "candidate", "name"))
	put(p, "stage", pick(facts, "stage", "status"))
	putNumber(p, "score", pick(facts, "score", "rating"))
	put(p, "submitted_on", pick(facts, "submitted_on", "submittedon", "submittedOn", "submitted", "date"))
	put(p, "email", pick(facts, "email"))
	put(p, "phone", pick(facts, "phone", "phone_number"))
	put(p, "resume_url", pick(facts, "resume_url", "resumeurl", "resumeUrl", "resume"))
	put(p, "notes", pick(facts, "notes", "note"))
	return p
}

func buildLeaveRequest(facts map[string]any) map[string]any {
	p := map[string]any{}
	put(p, "employee_id", pick(facts, "employee_id", "employeeid", "employeeId"))
	put(p, "employee_name", pick(facts, "employee_name", "employeename", "employeeName", "employee", "name"))
	put(p, "leave_type", pick(facts, "leave_type", "leavetype", "leaveType", "type"))
	put(p, "start_date", pick(facts, "start_date", "startdate", "startDate", "from"))
	put(p, "end_date", pick(facts, "end_date", "enddate", "endDate", "to"))
	put(p, "status", pick(facts, "status"))
	put(p, "approver", pick(facts, "approver", "approved_by"))
	put(p, "notes", pick(facts, "notes", "note", "reason"))
	return p
}

func buildExpenseClaim(facts map[string]any) map[string]any {
	p := map[string]any{}
	put(p, "employee_name", pick(facts, "employee_name", "employeename", "employeeName", "employee", "name"))
	put(p, "category", pick(facts, "category", "expense_type"))
	// amount defaults to zero when present but unparsable
	if v := pick(facts, "amount", "total", "cost"); v != nil {
		if n, ok := toNumber(v); ok {
			p["amount"] = n
		} else {
			p["amount"] = float64(0)
		}
	}
	put(p, "status", pick(facts, "status"))
	put(p, "submitted_on", pick(facts, "submitted_on", "submittedon", "submittedOn", "submitted", "date"))
	put(p, "reimbursement_date", pick(facts, "reimbursement_date", "reimbursementdate", "reimbursementDate", "reimbursed_on"))
	put(p, "notes", pick(facts, "notes", "note", "description"))
	put(p, "receipt_url", pick(facts, "receipt_url", "receipturl", "receiptUrl", "receipt"))
	return p
}

func buildProject(facts map[string]any) map[string]any {
	p := map[string]any{}
	put(p, "name", pick(facts, "name", "title", "project_name"))
	put(p, "lead", pick(facts, "lead", "owner", "manager"))
	put(p, "status", pick(facts, "status", "state"))
	put(p, "due_on", pick(facts, "due_on", "dueon", "dueOn", "due", "deadline"))
	if v := pick(facts, "contributors", "members", "team"); v != nil {
		p["contributors"] = toList(v)
	}
	put(p, "notes", pick(facts, "notes", "note", "description"))
	return p
}

// pick returns the first alias present in facts with a non-nil value.
func pick(facts map[string]any, aliases ...string) any {
	for _, key := range aliases {
		if v, ok := facts[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func put(p map[string]any, key string, v any) {
	if v != nil {
		p[key] = v
	}
}

func putNumber(p map[string]any, key string, v any) {
	if v == nil {
		return
	}
	if n, ok := toNumber(v); ok {
		p[key] = n
	}
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toList normalizes a contributors value into a list of trimmed strings.
// Comma-separated strings are split; existing lists pass through.
func toList(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return nil
	}
}
