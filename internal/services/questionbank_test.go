package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	examprepclient "github.com/peak10/examprep-backend/internal/clients/examprep"
	"github.com/peak10/examprep-backend/internal/data/repos"
	"github.com/peak10/examprep-backend/internal/data/repos/testutil"
	"github.com/peak10/examprep-backend/internal/types"
)

type fakeExtractionClient struct {
	identifyResult []examprepclient.ConceptCandidate
	identifyErr    error
	prepResult     *examprepclient.PrepQuestionsResult
	prepErr        error
	diagResult     *examprepclient.DiagnosticResult
	diagErr        error

	gotConceptNames []string
	gotInvent       bool
}

func (f *fakeExtractionClient) IdentifyConcepts(ctx context.Context, questionBankFile string) ([]examprepclient.ConceptCandidate, error) {
	return f.identifyResult, f.identifyErr
}

func (f *fakeExtractionClient) PrepQuestions(ctx context.Context, questionBankFile string, conceptNames []string, isInventQuestions bool) (*examprepclient.PrepQuestionsResult, error) {
	f.gotConceptNames = conceptNames
	f.gotInvent = isInventQuestions
	if f.prepErr != nil {
		return nil, f.prepErr
	}
	return f.prepResult, nil
}

func (f *fakeExtractionClient) GenerateDiagnosticQuestions(ctx context.Context, chapterID uuid.UUID) (*examprepclient.DiagnosticResult, error) {
	if f.diagErr != nil {
		return nil, f.diagErr
	}
	return f.diagResult, nil
}

type questionBankEnv struct {
	db             *gorm.DB
	svc            QuestionBankService
	fake           *fakeExtractionClient
	conceptRepo    repos.ConceptRepo
	questionRepo   repos.QuestionRepo
	diagnosticRepo repos.DiagnosticQuestionRepo
}

func newQuestionBankEnv(t *testing.T, fake *fakeExtractionClient) (questionBankEnv, *types.Chapter) {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	conceptRepo := repos.NewConceptRepo(gdb, log)
	questionRepo := repos.NewQuestionRepo(gdb, log)
	diagnosticRepo := repos.NewDiagnosticQuestionRepo(gdb, log)

	env := questionBankEnv{
		db:             gdb,
		svc:            NewQuestionBankService(gdb, log, fake, conceptRepo, questionRepo, diagnosticRepo),
		fake:           fake,
		conceptRepo:    conceptRepo,
		questionRepo:   questionRepo,
		diagnosticRepo: diagnosticRepo,
	}
	ch := testutil.SeedChapter(t, gdb, "Kinematics")
	return env, ch
}

func extractedQuestion(concept string) examprepclient.ExtractedQuestion {
	return examprepclient.ExtractedQuestion{
		Type:           "mcq",
		Concept:        concept,
		QuestionStream: []byte(`[{"kind":"text","content_md":"q"}]`),
		Options:        []byte(`[{"key":"A","option_stream":[]}]`),
		CorrectOption:  "A",
	}
}

func TestPrepareQuestionsReplacesExistingSet(t *testing.T) {
	fake := &fakeExtractionClient{
		prepResult: &examprepclient.PrepQuestionsResult{
			Questions: []examprepclient.ExtractedQuestion{
				extractedQuestion("velocity"),
				extractedQuestion("acceleration"),
			},
		},
	}
	env, ch := newQuestionBankEnv(t, fake)
	ctx := context.Background()

	gdb := env.db
	velocity := testutil.SeedConcept(t, gdb, ch.ID, "velocity", 1)
	acceleration := testutil.SeedConcept(t, gdb, ch.ID, "acceleration", 2)
	old := testutil.SeedQuestion(t, gdb, testutil.PtrUUID(velocity.ID))

	report, err := env.svc.PrepareQuestions(ctx, ch.ID, "qb.pdf", false)
	if err != nil {
		t.Fatalf("PrepareQuestions: %v", err)
	}
	if report.Status != IngestStatusCompleted {
		t.Fatalf("status = %q", report.Status)
	}
	if report.Extracted != 2 || report.Deleted != 1 || report.Created != 2 || report.Unmatched != 0 {
		t.Fatalf("report = %+v", report)
	}
	if len(fake.gotConceptNames) != 2 || fake.gotConceptNames[0] != "velocity" {
		t.Fatalf("concept names sent = %v", fake.gotConceptNames)
	}

	remaining, err := env.questionRepo.GetByConceptIDs(ctx, nil, []uuid.UUID{velocity.ID, acceleration.ID})
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("len(remaining) = %d", len(remaining))
	}
	for _, q := range remaining {
		if q.ID == old.ID {
			t.Fatal("old question survived a replace ingestion")
		}
		if q.Status != types.QuestionStatusNeedsVerification {
			t.Fatalf("status = %q", q.Status)
		}
		if q.IsInvented {
			t.Fatal("non-invent ingestion marked question invented")
		}
	}
}

func TestPrepareQuestionsInventAppends(t *testing.T) {
	fake := &fakeExtractionClient{
		prepResult: &examprepclient.PrepQuestionsResult{
			Questions: []examprepclient.ExtractedQuestion{extractedQuestion("velocity")},
		},
	}
	env, ch := newQuestionBankEnv(t, fake)
	ctx := context.Background()

	gdb := env.db
	velocity := testutil.SeedConcept(t, gdb, ch.ID, "velocity", 1)
	old := testutil.SeedQuestion(t, gdb, testutil.PtrUUID(velocity.ID))

	report, err := env.svc.PrepareQuestions(ctx, ch.ID, "qb.pdf", true)
	if err != nil {
		t.Fatalf("PrepareQuestions: %v", err)
	}
	if report.Deleted != 0 || report.Created != 1 {
		t.Fatalf("report = %+v", report)
	}
	if !fake.gotInvent {
		t.Fatal("invent flag not forwarded to extraction")
	}

	all, err := env.questionRepo.GetByConceptIDs(ctx, nil, []uuid.UUID{velocity.ID})
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want old question kept plus one invented", len(all))
	}
	foundOld, foundInvented := false, false
	for _, q := range all {
		if q.ID == old.ID {
			foundOld = true
		}
		if q.IsInvented {
			foundInvented = true
		}
	}
	if !foundOld || !foundInvented {
		t.Fatalf("foundOld=%v foundInvented=%v", foundOld, foundInvented)
	}
}

func TestPrepareQuestionsEmptyExtractionIsNoop(t *testing.T) {
	fake := &fakeExtractionClient{
		prepResult: &examprepclient.PrepQuestionsResult{Questions: nil},
	}
	env, ch := newQuestionBankEnv(t, fake)
	ctx := context.Background()

	gdb := env.db
	velocity := testutil.SeedConcept(t, gdb, ch.ID, "velocity", 1)
	old := testutil.SeedQuestion(t, gdb, testutil.PtrUUID(velocity.ID))

	report, err := env.svc.PrepareQuestions(ctx, ch.ID, "qb.pdf", false)
	if err != nil {
		t.Fatalf("PrepareQuestions: %v", err)
	}
	if report.Status != IngestStatusSkipped || report.Deleted != 0 || report.Created != 0 {
		t.Fatalf("report = %+v", report)
	}

	all, err := env.questionRepo.GetByConceptIDs(ctx, nil, []uuid.UUID{velocity.ID})
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if len(all) != 1 || all[0].ID != old.ID {
		t.Fatalf("existing questions disturbed by empty extraction: %v", all)
	}
}

func TestPrepareQuestionsUnmatchedConceptStoredOrphaned(t *testing.T) {
	fake := &fakeExtractionClient{
		prepResult: &examprepclient.PrepQuestionsResult{
			Questions: []examprepclient.ExtractedQuestion{
				extractedQuestion("velocity"),
				extractedQuestion("thermodynamics"), // not a chapter concept
			},
		},
	}
	env, ch := newQuestionBankEnv(t, fake)
	ctx := context.Background()

	gdb := env.db
	velocity := testutil.SeedConcept(t, gdb, ch.ID, "velocity", 1)

	report, err := env.svc.PrepareQuestions(ctx, ch.ID, "qb.pdf", false)
	if err != nil {
		t.Fatalf("PrepareQuestions: %v", err)
	}
	if report.Unmatched != 1 || report.Created != 2 {
		t.Fatalf("report = %+v", report)
	}

	var orphans []*types.Question
	if err := gdb.WithContext(ctx).Where("concept_id IS NULL").Find(&orphans).Error; err != nil {
		t.Fatalf("load orphans: %v", err)
	}
	if len(orphans) != 1 {
		t.Fatalf("len(orphans) = %d", len(orphans))
	}
	matched, err := env.questionRepo.GetByConceptIDs(ctx, nil, []uuid.UUID{velocity.ID})
	if err != nil {
		t.Fatalf("load matched: %v", err)
	}
	if len(matched) != 1 {
		t.Fatalf("len(matched) = %d", len(matched))
	}
}

func TestPrepareQuestionsExtractionFailureReturnsFailedReport(t *testing.T) {
	fake := &fakeExtractionClient{
		prepErr: &examprepclient.HTTPError{StatusCode: http.StatusInternalServerError, Status: "500 Internal Server Error"},
	}
	env, ch := newQuestionBankEnv(t, fake)
	ctx := context.Background()

	gdb := env.db
	velocity := testutil.SeedConcept(t, gdb, ch.ID, "velocity", 1)
	testutil.SeedQuestion(t, gdb, testutil.PtrUUID(velocity.ID))

	report, err := env.svc.PrepareQuestions(ctx, ch.ID, "qb.pdf", false)
	if err == nil {
		t.Fatal("expected error")
	}
	var ingErr *IngestError
	if !errors.As(err, &ingErr) || ingErr.Kind != IngestErrorExtraction {
		t.Fatalf("expected extraction IngestError, got %v", err)
	}
	if report == nil || report.Status != IngestStatusFailed || report.ErrorKind != IngestErrorExtraction {
		t.Fatalf("report = %+v", report)
	}

	all, err := env.questionRepo.GetByConceptIDs(ctx, nil, []uuid.UUID{velocity.ID})
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("existing questions disturbed by failed extraction: %d", len(all))
	}
}

func TestPrepareQuestionsParseFailureMapsToParseKind(t *testing.T) {
	fake := &fakeExtractionClient{
		prepErr: &examprepclient.ParseError{Err: errors.New("invalid character 'x'")},
	}
	env, ch := newQuestionBankEnv(t, fake)

	report, err := env.svc.PrepareQuestions(context.Background(), ch.ID, "qb.pdf", false)
	if err == nil {
		t.Fatal("expected error")
	}
	var ingErr *IngestError
	if !errors.As(err, &ingErr) || ingErr.Kind != IngestErrorParse {
		t.Fatalf("expected parse IngestError, got %v", err)
	}
	if report.ErrorKind != IngestErrorParse {
		t.Fatalf("report = %+v", report)
	}
}

func TestUploadChapterConceptsReplacesAndOrders(t *testing.T) {
	env, ch := newQuestionBankEnv(t, &fakeExtractionClient{})
	ctx := context.Background()

	gdb := env.db
	stale := testutil.SeedConcept(t, gdb, ch.ID, "stale concept", 1)

	report, err := env.svc.UploadChapterConcepts(ctx, ch.ID, []ConceptUpload{
		{BroadConcept: "velocity", Weightage: 3},
		{BroadConcept: "acceleration", Weightage: 2},
		{BroadConcept: "momentum", Weightage: 1},
	})
	if err != nil {
		t.Fatalf("UploadChapterConcepts: %v", err)
	}
	if report.Deleted != 1 || report.Created != 3 || report.Status != IngestStatusCompleted {
		t.Fatalf("report = %+v", report)
	}

	concepts, err := env.conceptRepo.GetByChapterID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("load concepts: %v", err)
	}
	if len(concepts) != 3 {
		t.Fatalf("len(concepts) = %d", len(concepts))
	}
	wantNames := []string{"velocity", "acceleration", "momentum"}
	for i, c := range concepts {
		if c.ID == stale.ID {
			t.Fatal("stale concept survived upload")
		}
		if c.Name != wantNames[i] || c.ConceptOrderNumber != i+1 {
			t.Fatalf("concepts[%d] = %q order %d", i, c.Name, c.ConceptOrderNumber)
		}
		if !c.IsActive {
			t.Fatalf("concepts[%d] not active", i)
		}
	}
}

func TestGenerateDiagnosticQuestionsIsAdditive(t *testing.T) {
	firstIDs := []uuid.UUID{uuid.New(), uuid.New()}
	fake := &fakeExtractionClient{
		diagResult: &examprepclient.DiagnosticResult{QuestionIDs: firstIDs},
	}
	env, ch := newQuestionBankEnv(t, fake)
	ctx := context.Background()

	if _, err := env.svc.GenerateDiagnosticQuestions(ctx, ch.ID); err != nil {
		t.Fatalf("first call: %v", err)
	}

	fake.diagResult = &examprepclient.DiagnosticResult{QuestionIDs: []uuid.UUID{uuid.New()}}
	report, err := env.svc.GenerateDiagnosticQuestions(ctx, ch.ID)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if report.Created != 1 {
		t.Fatalf("report = %+v", report)
	}

	rows, err := env.diagnosticRepo.GetByChapterID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("load diagnostic rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want additive accumulation", len(rows))
	}
	if rows[0].QuestionOrderNumber != 1 || rows[1].QuestionOrderNumber != 2 {
		t.Fatalf("first batch order numbers = %d, %d", rows[0].QuestionOrderNumber, rows[1].QuestionOrderNumber)
	}
}

func TestGenerateDiagnosticQuestionsEmptyResultSkips(t *testing.T) {
	fake := &fakeExtractionClient{
		diagResult: &examprepclient.DiagnosticResult{},
	}
	env, ch := newQuestionBankEnv(t, fake)
	ctx := context.Background()

	report, err := env.svc.GenerateDiagnosticQuestions(ctx, ch.ID)
	if err != nil {
		t.Fatalf("GenerateDiagnosticQuestions: %v", err)
	}
	if report.Status != IngestStatusSkipped || report.Created != 0 {
		t.Fatalf("report = %+v", report)
	}

	rows, err := env.diagnosticRepo.GetByChapterID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("load diagnostic rows: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("len(rows) = %d", len(rows))
	}
}

func TestIdentifyConceptsPassThrough(t *testing.T) {
	fake := &fakeExtractionClient{
		identifyResult: []examprepclient.ConceptCandidate{
			{BroadConcept: "velocity", Weightage: 2},
		},
	}
	env, _ := newQuestionBankEnv(t, fake)

	out, err := env.svc.IdentifyConcepts(context.Background(), "qb.pdf")
	if err != nil {
		t.Fatalf("IdentifyConcepts: %v", err)
	}
	if len(out) != 1 || out[0].BroadConcept != "velocity" {
		t.Fatalf("out = %+v", out)
	}

	fake.identifyResult = nil
	fake.identifyErr = &examprepclient.HTTPError{StatusCode: http.StatusBadGateway, Status: "502 Bad Gateway"}
	if _, err := env.svc.IdentifyConcepts(context.Background(), "qb.pdf"); err == nil {
		t.Fatal("expected error")
	}
}
