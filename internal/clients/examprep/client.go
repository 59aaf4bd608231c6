package examprep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/peak10/examprep-backend/internal/platform/logger"
	"github.com/peak10/examprep-backend/internal/utils"
)

// ConceptCandidate is one entry of the concept identification response.
type ConceptCandidate struct {
	BroadConcept string  `json:"broad_concept"`
	Weightage    float64 `json:"weightage"`
}

// ExtractedQuestion is one structured question from the prep-questions
// endpoint. Concept is a human-readable name, not an id; stream and option
// payloads are opaque to this client and stored as-is.
type ExtractedQuestion struct {
	Type                   string          `json:"type"`
	QuestionStream         json.RawMessage `json:"question_stream"`
	Options                json.RawMessage `json:"options"`
	CorrectOption          string          `json:"correct_option"`
	Difficulty             string          `json:"difficulty"`
	Concept                string          `json:"concept"`
	Hint                   string          `json:"hint"`
	FinalAnswer            string          `json:"final_answer"`
	DetailedSolutionStream json.RawMessage `json:"detailed_solution_stream"`
}

type PrepQuestionsResult struct {
	Questions []ExtractedQuestion `json:"questions"`
}

type DiagnosticResult struct {
	QuestionIDs []uuid.UUID `json:"question_ids"`
}

// Client calls the exam-prep extraction backend. It is a thin shim: two file
// extraction calls and one diagnostic generation call, no retries.
type Client interface {
	IdentifyConcepts(ctx context.Context, questionBankFile string) ([]ConceptCandidate, error)
	PrepQuestions(ctx context.Context, questionBankFile string, conceptNames []string, isInventQuestions bool) (*PrepQuestionsResult, error)
	GenerateDiagnosticQuestions(ctx context.Context, chapterID uuid.UUID) (*DiagnosticResult, error)
}

type Config struct {
	ServiceURL  string
	WorkspaceID string
	App         string
	Env         string
	Timeout     time.Duration
}

func ConfigFromEnv(log *logger.Logger) Config {
	timeoutSec := utils.GetEnvAsInt("EXAMPREP_TIMEOUT_SECONDS", 120, log)
	return Config{
		ServiceURL:  utils.GetEnv("EXAMPREP_SERVICE_URL", "", log),
		WorkspaceID: utils.GetEnv("EXAMPREP_WORKSPACE_ID", "", log),
		App:         utils.GetEnv("EXAMPREP_APP", "peak10", log),
		Env:         utils.GetEnv("EXAMPREP_ENV", "dev", log),
		Timeout:     time.Duration(timeoutSec) * time.Second,
	}
}

type client struct {
	log        *logger.Logger
	baseURL    string
	app        string
	env        string
	httpClient *http.Client
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	serviceURL := strings.TrimRight(strings.TrimSpace(cfg.ServiceURL), "/")
	if serviceURL == "" {
		return nil, fmt.Errorf("missing EXAMPREP_SERVICE_URL")
	}
	baseURL := serviceURL
	if ws := strings.Trim(strings.TrimSpace(cfg.WorkspaceID), "/"); ws != "" {
		baseURL = serviceURL + "/" + ws
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &client{
		log:        log.With("client", "ExamPrepClient"),
		baseURL:    baseURL,
		app:        cfg.App,
		env:        cfg.Env,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// HTTPError is returned for any non-2xx backend response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("exam_prep http %d (%s): %s", e.StatusCode, e.Status, e.Body)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// ParseError is returned when a successful response body is not valid JSON
// after the backslash cleanup.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("exam_prep response parse: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// The backend double/triple-escapes backslashes inside the embedded JSON
// payload. Collapse any run of 3 or more backslashes to a single escaped
// backslash; a legitimate run of exactly 2 is left alone.
var overEscapedBackslashes = regexp.MustCompile(`\\{3,}`)

func collapseOverEscapedBackslashes(body []byte) []byte {
	return overEscapedBackslashes.ReplaceAll(body, []byte(`\\`))
}

func (c *client) IdentifyConcepts(ctx context.Context, questionBankFile string) ([]ConceptCandidate, error) {
	body, err := c.post(ctx, "/exam_prep/identifyChapterConcepts", map[string]interface{}{
		"app":              c.app,
		"env":              c.env,
		"questionBankFile": questionBankFile,
	})
	if err != nil {
		return nil, err
	}
	var out []ConceptCandidate
	if err := json.Unmarshal(collapseOverEscapedBackslashes(body), &out); err != nil {
		return nil, &ParseError{Err: err}
	}
	return out, nil
}

func (c *client) PrepQuestions(ctx context.Context, questionBankFile string, conceptNames []string, isInventQuestions bool) (*PrepQuestionsResult, error) {
	if conceptNames == nil {
		conceptNames = []string{}
	}
	body, err := c.post(ctx, "/exam_prep/prepQuestions", map[string]interface{}{
		"app":               c.app,
		"env":               c.env,
		"questionBankFile":  questionBankFile,
		"concepts":          conceptNames,
		"isInventQuestions": isInventQuestions,
	})
	if err != nil {
		return nil, err
	}
	var out PrepQuestionsResult
	if err := json.Unmarshal(collapseOverEscapedBackslashes(body), &out); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &out, nil
}

func (c *client) GenerateDiagnosticQuestions(ctx context.Context, chapterID uuid.UUID) (*DiagnosticResult, error) {
	body, err := c.post(ctx, "/exam_prep/generateDiagnosticQuestions", map[string]interface{}{
		"app":       c.app,
		"env":       c.env,
		"chapterId": chapterID,
	})
	if err != nil {
		return nil, err
	}
	// Diagnostic responses are plain JSON; no backslash cleanup here.
	var out DiagnosticResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &out, nil
}

func (c *client) post(ctx context.Context, path string, payload map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exam_prep request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("exam_prep read response %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("Extraction backend returned non-success", "path", path, "status", resp.Status)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
