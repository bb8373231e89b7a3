package employee

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultEmailDomain は社員メールアドレスに許可される既定のドメインです。
const DefaultEmailDomain = "astrolitetech.com"

const dateLayout = "2006-01-02"

var (
	lettersPattern = regexp.MustCompile(`^[A-Za-z\s]+$`)
	empIDPattern   = regexp.MustCompile(`^ATS0\d{3}$`)
	whitespace     = regexp.MustCompile(`\s`)

	minJoiningDate = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)
)

const (
	msgName          = "Name must contain only alphabetical characters, 3-50 characters (excluding spaces)."
	msgEmpID         = "Employee ID must follow the format ATS0 followed by exactly 3 digits."
	msgRole          = "Role must contain only alphabetical characters, 5-30 characters (excluding spaces)."
	msgJoiningDate   = "Joining date must be between January 1, 1980, and today."
	msgTraining      = `Training status must be either "ongoing" or "done".`
	msgProjectStatus = `Project status must be either "on-bench" or "in-project".`
	msgProjectName   = "Project name must contain only alphabetical characters, 5-70 characters (excluding spaces)."
)

// Validator は社員レコードの入力検証を行います。状態を持たず並行利用できます。
type Validator struct {
	emailDomain  string
	emailPattern *regexp.Regexp
}

// NewValidator は指定ドメインのメールアドレスのみを許可する Validator を生成します。
// domain が空の場合は DefaultEmailDomain を使います。
func NewValidator(domain string) *Validator {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		domain = DefaultEmailDomain
	}
	pattern := regexp.MustCompile(`^[a-zA-Z0-9]+(\.[a-zA-Z0-9]+)?@` + regexp.QuoteMeta(domain) + `$`)
	return &Validator{emailDomain: domain, emailPattern: pattern}
}

// EmailDomain は許可されているメールドメインを返します。
func (v *Validator) EmailDomain() string {
	return v.emailDomain
}

// Validate は r を検証し、違反した項目のメッセージを定められた項目順で返します。
// today は入社日の上限として使われます。違反がなければ空のスライスを返します。
func (v *Validator) Validate(r Record, today time.Time) []string {
	errs := make([]string, 0)

	if !validLetters(r.Name, 3, 50) {
		errs = append(errs, msgName)
	}

	if !validEmpID(r.EmpID) {
		errs = append(errs, msgEmpID)
	}

	if !v.validEmail(r.Email) {
		errs = append(errs, fmt.Sprintf("Email must have 3-40 alphanumeric characters with at most one dot before @%s.", v.emailDomain))
	}

	if !validLetters(r.Role, 5, 30) {
		errs = append(errs, msgRole)
	}

	if !validJoiningDate(r.JoiningDate, today) {
		errs = append(errs, msgJoiningDate)
	}

	training := TrainingStatus(r.Training)
	if training != TrainingOngoing && training != TrainingDone {
		errs = append(errs, msgTraining)
	}

	if training == TrainingDone {
		status := ProjectStatus(r.ProjectStatus)
		if status != ProjectOnBench && status != ProjectInProject {
			errs = append(errs, msgProjectStatus)
		}
		if status == ProjectInProject && !validLetters(r.ProjectName, 5, 70) {
			errs = append(errs, msgProjectName)
		}
	}

	return errs
}

func validLetters(value string, minLen, maxLen int) bool {
	if !lettersPattern.MatchString(value) {
		return false
	}
	n := len(stripSpaces(value))
	return n >= minLen && n <= maxLen
}

func validEmpID(value string) bool {
	return empIDPattern.MatchString(value) && !strings.HasSuffix(value, "000")
}

func (v *Validator) validEmail(value string) bool {
	if !v.emailPattern.MatchString(value) {
		return false
	}
	local, _, _ := strings.Cut(value, "@")
	n := len(stripSpaces(local))
	return n >= 3 && n <= 40
}

func validJoiningDate(value string, today time.Time) bool {
	date, err := ParseJoiningDate(value)
	if err != nil {
		return false
	}
	return !date.Before(minJoiningDate) && !date.After(truncateToDate(today))
}

// ParseJoiningDate は YYYY-MM-DD 形式の日付を UTC の日付として解釈します。
// RFC 3339 形式の日時も受け付け、その日付部分を使います。
func ParseJoiningDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidJoiningDay, value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func stripSpaces(s string) string {
	return whitespace.ReplaceAllString(s, "")
}
