package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/ledgerline/internal/apperrors"
	"github.com/ledgerline/ledgerline/internal/core/domain"
	portssvc "github.com/ledgerline/ledgerline/internal/core/ports/services"
	"github.com/ledgerline/ledgerline/internal/core/services"
	"github.com/ledgerline/ledgerline/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockJournalRepository
	service   portssvc.JournalSvcFacade
	entryTime time.Time
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockJournalRepository)
	suite.service = services.NewJournalService(suite.mockRepo)
	suite.entryTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
}

func (suite *JournalServiceTestSuite) balancedLines() []dto.EntryLineInput {
	return []dto.EntryLineInput{
		{AccountCode: 100, Debit: 1000},
		{AccountCode: 200, Credit: 1000},
	}
}

func postedEntry(ref int64, entryTime time.Time) *domain.JournalEntry {
	postTime := entryTime.Add(time.Hour)
	return &domain.JournalEntry{
		Ref:       ref,
		EntryTime: entryTime,
		PostTime:  &postTime,
		Lines: []domain.JournalEntryLine{
			{EntryRef: ref, LineNumber: 1, AccountCode: 100, Debit: 1000},
			{EntryRef: ref, LineNumber: 2, AccountCode: 200, Credit: 1000},
		},
	}
}

func (suite *JournalServiceTestSuite) TestDraftJournalEntry_Success() {
	ctx := context.Background()
	suite.mockRepo.On("CreateDraftEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(int64(7), nil).Once()

	ref, created, err := suite.service.DraftJournalEntry(ctx, dto.DraftEntryInput{
		EntryTime: suite.entryTime,
		Note:      "Opening sale",
		Lines:     suite.balancedLines(),
	})

	suite.Require().NoError(err)
	suite.True(created)
	suite.Equal(int64(7), ref)

	saved := suite.mockRepo.Calls[0].Arguments.Get(1).(domain.JournalEntry)
	suite.Require().Len(saved.Lines, 2)
	suite.Equal(1, saved.Lines[0].LineNumber)
	suite.Equal(2, saved.Lines[1].LineNumber)
	suite.Nil(saved.PostTime)
}

func (suite *JournalServiceTestSuite) TestDraftJournalEntry_EmptyLinesAllowed() {
	ctx := context.Background()
	suite.mockRepo.On("CreateDraftEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(int64(8), nil).Once()

	ref, created, err := suite.service.DraftJournalEntry(ctx, dto.DraftEntryInput{EntryTime: suite.entryTime})

	suite.Require().NoError(err)
	suite.True(created)
	suite.Equal(int64(8), ref)
}

func (suite *JournalServiceTestSuite) TestDraftJournalEntry_BadLineShape() {
	_, _, err := suite.service.DraftJournalEntry(context.Background(), dto.DraftEntryInput{
		EntryTime: suite.entryTime,
		Lines:     []dto.EntryLineInput{{AccountCode: 100, Debit: 500, Credit: 500}},
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateDraftEntry")
}

func (suite *JournalServiceTestSuite) TestDraftJournalEntry_InvalidEntryTime() {
	_, _, err := suite.service.DraftJournalEntry(context.Background(), dto.DraftEntryInput{
		Lines: suite.balancedLines(),
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateDraftEntry")
}

func (suite *JournalServiceTestSuite) TestDraftJournalEntry_IdempotentReplay() {
	ctx := context.Background()
	suite.mockRepo.On("FindEntryRefByIdempotentKey", ctx, "key-1").Return(int64(5), nil).Once()

	ref, created, err := suite.service.DraftJournalEntry(ctx, dto.DraftEntryInput{
		EntryTime:     suite.entryTime,
		Lines:         suite.balancedLines(),
		IdempotentKey: "key-1",
	})

	suite.Require().NoError(err)
	suite.False(created)
	suite.Equal(int64(5), ref)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateDraftEntry")
}

func (suite *JournalServiceTestSuite) TestDraftJournalEntry_IdempotentKeyRace() {
	// The pre-check misses, the insert hits the unique index, the service
	// returns the winner's ref.
	ctx := context.Background()
	suite.mockRepo.On("FindEntryRefByIdempotentKey", ctx, "key-2").Return(int64(0), apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CreateDraftEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(int64(0), apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindEntryRefByIdempotentKey", ctx, "key-2").Return(int64(9), nil).Once()

	ref, created, err := suite.service.DraftJournalEntry(ctx, dto.DraftEntryInput{
		EntryTime:     suite.entryTime,
		Lines:         suite.balancedLines(),
		IdempotentKey: "key-2",
	})

	suite.Require().NoError(err)
	suite.False(created)
	suite.Equal(int64(9), ref)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_PostedIsConflict() {
	ctx := context.Background()
	suite.mockRepo.On("FindEntryByRef", ctx, int64(3)).Return(postedEntry(3, suite.entryTime), nil).Once()

	note := "new note"
	err := suite.service.UpdateJournalEntry(ctx, 3, dto.UpdateEntryInput{Note: &note})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDraftEntry")
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_ReplacesLines() {
	ctx := context.Background()
	draft := &domain.JournalEntry{Ref: 4, EntryTime: suite.entryTime}
	suite.mockRepo.On("FindEntryByRef", ctx, int64(4)).Return(draft, nil).Once()
	suite.mockRepo.On("UpdateDraftEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), true).Return(nil).Once()

	lines := suite.balancedLines()
	err := suite.service.UpdateJournalEntry(ctx, 4, dto.UpdateEntryInput{Lines: &lines})

	suite.Require().NoError(err)
	updated := suite.mockRepo.Calls[1].Arguments.Get(1).(domain.JournalEntry)
	suite.Require().Len(updated.Lines, 2)
	suite.Equal(int64(4), updated.Lines[0].EntryRef)
	suite.Equal(1, updated.Lines[0].LineNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_AlreadyPosted() {
	ctx := context.Background()
	postTime := suite.entryTime.Add(time.Hour)
	suite.mockRepo.On("PostEntry", ctx, int64(3), postTime).Return(nil, apperrors.ErrConflict).Once()

	_, err := suite.service.PostJournalEntry(ctx, 3, postTime)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestDeleteJournalEntryDrafts_EmptyInputIsNoOp() {
	deleted, err := suite.service.DeleteJournalEntryDrafts(context.Background(), nil)

	suite.Require().NoError(err)
	suite.NotNil(deleted)
	suite.Empty(deleted)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteDraftEntries")
}

func (suite *JournalServiceTestSuite) TestDeleteJournalEntryDrafts_SkipsPosted() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteDraftEntries", ctx, []int64{1, 2, 3}).Return([]int64{2}, nil).Once()

	deleted, err := suite.service.DeleteJournalEntryDrafts(ctx, []int64{1, 2, 3})

	suite.Require().NoError(err)
	suite.Equal([]int64{2}, deleted)
}

func (suite *JournalServiceTestSuite) TestReverseJournalEntry_SwapsSidesAndLinks() {
	ctx := context.Background()
	original := postedEntry(3, suite.entryTime)
	suite.mockRepo.On("FindEntryByRef", ctx, int64(3)).Return(original, nil).Once()
	suite.mockRepo.On("SaveReversal", ctx, int64(3), mock.AnythingOfType("domain.JournalEntry")).Return(int64(12), nil).Once()

	reversalTime := suite.entryTime.Add(24 * time.Hour)
	reversalRef, created, err := suite.service.ReverseJournalEntry(ctx, dto.ReverseEntryInput{
		Ref:          3,
		ReversalTime: reversalTime,
	})

	suite.Require().NoError(err)
	suite.True(created)
	suite.Equal(int64(12), reversalRef)

	reversal := suite.mockRepo.Calls[1].Arguments.Get(2).(domain.JournalEntry)
	suite.Require().Len(reversal.Lines, 2)
	suite.Equal(int64(1000), reversal.Lines[0].Credit)
	suite.Equal(int64(0), reversal.Lines[0].Debit)
	suite.Equal(int64(1000), reversal.Lines[1].Debit)
	suite.Require().NotNil(reversal.ReversalOfRef)
	suite.Equal(int64(3), *reversal.ReversalOfRef)
	suite.Equal("Reversal of journal entry 3", reversal.Note)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournalEntry_InvalidReversalTime() {
	_, _, err := suite.service.ReverseJournalEntry(context.Background(), dto.ReverseEntryInput{Ref: 3})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindEntryByRef")
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveReversal")
}

func (suite *JournalServiceTestSuite) TestReverseJournalEntry_DraftIsConflict() {
	ctx := context.Background()
	draft := &domain.JournalEntry{Ref: 4, EntryTime: suite.entryTime}
	suite.mockRepo.On("FindEntryByRef", ctx, int64(4)).Return(draft, nil).Once()

	_, _, err := suite.service.ReverseJournalEntry(ctx, dto.ReverseEntryInput{Ref: 4, ReversalTime: suite.entryTime})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveReversal")
}

func (suite *JournalServiceTestSuite) TestReverseJournalEntry_AlreadyReversed() {
	ctx := context.Background()
	original := postedEntry(3, suite.entryTime)
	reversedBy := int64(11)
	original.ReversedByRef = &reversedBy
	suite.mockRepo.On("FindEntryByRef", ctx, int64(3)).Return(original, nil).Once()

	_, _, err := suite.service.ReverseJournalEntry(ctx, dto.ReverseEntryInput{Ref: 3, ReversalTime: suite.entryTime})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveReversal")
}

func (suite *JournalServiceTestSuite) TestGetEntryRefByIdempotentKey_EmptyKey() {
	_, err := suite.service.GetEntryRefByIdempotentKey(context.Background(), "")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
