package bill

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platedepot/internal/core/apperror"
	"platedepot/internal/core/id"
	"platedepot/internal/core/types"
	"platedepot/internal/domain"
	"platedepot/internal/domain/catalogs/client"
	"platedepot/internal/domain/documents/issue_challan"
	"platedepot/internal/domain/documents/return_challan"
	"platedepot/pkg/numerator"
)

// --- fakes ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRow struct{ val int64 }

func (r *fakeRow) Scan(dest ...any) error {
	if ptr, ok := dest[0].(*int64); ok {
		*ptr = r.val
	}
	return nil
}

type fakeSeq struct{ n int64 }

func (s *fakeSeq) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	s.n++
	return &fakeRow{val: s.n}
}

type fakeClients struct{ cl *client.Client }

func (f *fakeClients) GetByID(ctx context.Context, clientID id.ID) (*client.Client, error) {
	if f.cl == nil || f.cl.ID != clientID {
		return nil, apperror.NewNotFound("client", clientID.String())
	}
	return f.cl, nil
}

type fakeIssues struct{ docs []*issue_challan.IssueChallan }

func (f *fakeIssues) ListForClient(ctx context.Context, clientID id.ID, from, to *time.Time) ([]*issue_challan.IssueChallan, error) {
	return f.docs, nil
}

type fakeReturns struct{ docs []*return_challan.ReturnChallan }

func (f *fakeReturns) ListForClient(ctx context.Context, clientID id.ID, from, to *time.Time) ([]*return_challan.ReturnChallan, error) {
	return f.docs, nil
}

type fakeBillRepo struct {
	created    []*Bill
	linesSaved int
	lastDate   *time.Time
}

func (f *fakeBillRepo) Create(ctx context.Context, doc *Bill) error {
	f.created = append(f.created, doc)
	return nil
}

func (f *fakeBillRepo) GetByID(ctx context.Context, docID id.ID) (*Bill, error) {
	for _, b := range f.created {
		if b.ID == docID {
			return b, nil
		}
	}
	return nil, apperror.NewNotFound("bill", docID.String())
}

func (f *fakeBillRepo) GetByNumber(ctx context.Context, number string) (*Bill, error) {
	return nil, apperror.NewNotFound("bill", number)
}

func (f *fakeBillRepo) Delete(ctx context.Context, docID id.ID) error { return nil }

func (f *fakeBillRepo) SaveLines(ctx context.Context, doc *Bill) error {
	f.linesSaved++
	return nil
}

func (f *fakeBillRepo) LoadLines(ctx context.Context, doc *Bill) error { return nil }

func (f *fakeBillRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Bill], error) {
	return domain.ListResult[*Bill]{}, nil
}

func (f *fakeBillRepo) LastBillDate(ctx context.Context, clientID id.ID) (*time.Time, error) {
	return f.lastDate, nil
}

// --- fixtures ---

func testDay(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T) (*Service, *fakeBillRepo, *client.Client) {
	t.Helper()

	cl := client.New("CL-001", "Sharma Construction", types.NewMoneyFromInt(1))

	issue := issue_challan.New(cl.ID)
	issue.Number = "UC-1"
	issue.Date = testDay(1)
	issue.AddLine("2x3", 100, 0)

	ret := return_challan.New(cl.ID)
	ret.Number = "JC-1"
	ret.Date = testDay(11)
	ret.AddLine("2x3", 40, 0)

	repo := &fakeBillRepo{}
	svc := NewService(
		&fakeClients{cl: cl},
		&fakeIssues{docs: []*issue_challan.IssueChallan{issue}},
		&fakeReturns{docs: []*return_challan.ReturnChallan{ret}},
		repo,
		numerator.New(&fakeSeq{}),
		fakeTxManager{},
	)
	svc.clock = func() time.Time { return testDay(20) }
	return svc, repo, cl
}

func TestGenerate_PersistsBillWithNumber(t *testing.T) {
	svc, repo, cl := newFixture(t)

	doc, err := svc.Generate(context.Background(), GenerateRequest{
		ClientID: cl.ID,
		BillDate: testDay(20),
	})
	require.NoError(t, err)

	assert.Equal(t, "BILL-2025-00001", doc.Number)
	assert.True(t, doc.TotalRent.Equal(types.NewMoneyFromInt(1600)), "totalRent = %s", doc.TotalRent)
	assert.True(t, doc.FinalDue.Equal(types.NewMoneyFromInt(1600)))
	assert.Len(t, doc.Ledger, 2)
	assert.Len(t, repo.created, 1)
	assert.Equal(t, 1, repo.linesSaved)
}

func TestPreview_DoesNotPersist(t *testing.T) {
	svc, repo, cl := newFixture(t)

	res, err := svc.Preview(context.Background(), GenerateRequest{
		ClientID: cl.ID,
		BillDate: testDay(20),
	})
	require.NoError(t, err)

	assert.True(t, res.TotalRent.Equal(types.NewMoneyFromInt(1600)))
	assert.Empty(t, res.BillNumber)
	assert.Empty(t, repo.created)
}

func TestGenerate_UsesClientRates(t *testing.T) {
	svc, _, cl := newFixture(t)
	cl.WorkerCharge = types.NewMoneyFromInt(120)

	doc, err := svc.Generate(context.Background(), GenerateRequest{
		ClientID: cl.ID,
		BillDate: testDay(20),
	})
	require.NoError(t, err)
	assert.True(t, doc.CoreTotal.Equal(types.NewMoneyFromInt(1720)), "coreTotal = %s", doc.CoreTotal)
}

func TestGenerate_RejectsBackdatedBill(t *testing.T) {
	svc, repo, cl := newFixture(t)
	last := testDay(25)
	repo.lastDate = &last

	_, err := svc.Generate(context.Background(), GenerateRequest{
		ClientID: cl.ID,
		BillDate: testDay(20),
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
	assert.Empty(t, repo.created)
}

func TestGenerate_UnknownClient(t *testing.T) {
	svc, repo, _ := newFixture(t)

	_, err := svc.Generate(context.Background(), GenerateRequest{
		ClientID: id.New(),
		BillDate: testDay(20),
	})
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, repo.created)
}
