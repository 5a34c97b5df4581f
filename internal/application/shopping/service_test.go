package shopping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/domain/shopping"
	"github.com/pantryplan/api/internal/ports/inbound"
	apperrors "github.com/pantryplan/api/pkg/errors"
	"github.com/pantryplan/api/test/testutils"
)

type ShoppingListServiceTestSuite struct {
	suite.Suite
	repo    *testutils.MockShoppingListRepository
	events  *testutils.RecordingDispatcher
	factory *testutils.Factory
	service *ShoppingListService
	ctx     context.Context
	userID  uuid.UUID
}

func (s *ShoppingListServiceTestSuite) SetupTest() {
	s.repo = new(testutils.MockShoppingListRepository)
	s.events = &testutils.RecordingDispatcher{}
	s.factory = testutils.NewFactory(11)
	s.service = NewShoppingListService(s.repo, s.events, zap.NewNop())
	s.ctx = context.Background()
	s.userID = uuid.New()
}

func (s *ShoppingListServiceTestSuite) TestCreateList() {
	s.Run("ValidItems_ShouldCreateActiveList", func() {
		s.SetupTest()
		s.repo.On("Create", s.ctx, mock.AnythingOfType("*shopping.List")).Return(nil)

		dto, err := s.service.CreateList(s.ctx, inbound.CreateShoppingListCommand{
			UserID: s.userID,
			Name:   "Weekend",
			Items:  []inbound.ShoppingItemInput{{Name: "Bread", Quantity: 1, Unit: "loaf"}},
		})

		require.NoError(s.T(), err)
		assert.Equal(s.T(), "active", dto.Status)
		assert.Len(s.T(), dto.Items, 1)
		assert.Equal(s.T(), []string{"shopping.list.created"}, s.events.Names())
	})

	s.Run("BlankName_ShouldReturnValidationError", func() {
		s.SetupTest()

		_, err := s.service.CreateList(s.ctx, inbound.CreateShoppingListCommand{UserID: s.userID, Name: "  "})

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}

func (s *ShoppingListServiceTestSuite) TestUpdateList() {
	s.Run("Status_ShouldBeNormalised", func() {
		s.SetupTest()
		list := s.factory.ShoppingList(s.userID, 2)
		s.repo.On("FindByID", s.ctx, list.ID()).Return(list, nil)
		s.repo.On("Update", s.ctx, list).Return(nil)
		status := "Completed"

		dto, err := s.service.UpdateList(s.ctx, inbound.UpdateShoppingListCommand{ListID: list.ID(), UserID: s.userID, Status: &status})

		require.NoError(s.T(), err)
		assert.Equal(s.T(), "completed", dto.Status)
	})

	s.Run("UnknownStatus_ShouldReturnValidationError", func() {
		s.SetupTest()
		list := s.factory.ShoppingList(s.userID, 1)
		s.repo.On("FindByID", s.ctx, list.ID()).Return(list, nil)
		status := "lost"

		_, err := s.service.UpdateList(s.ctx, inbound.UpdateShoppingListCommand{ListID: list.ID(), UserID: s.userID, Status: &status})

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
		s.repo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
	})
}

func (s *ShoppingListServiceTestSuite) TestToggleItem() {
	s.Run("ValidIndex_ShouldFlipChecked", func() {
		s.SetupTest()
		list := s.factory.ShoppingList(s.userID, 3)
		s.repo.On("FindByID", s.ctx, list.ID()).Return(list, nil)
		s.repo.On("Update", s.ctx, list).Return(nil)

		dto, err := s.service.ToggleItem(s.ctx, list.ID(), s.userID, 1)

		require.NoError(s.T(), err)
		assert.False(s.T(), dto.Items[0].Checked)
		assert.True(s.T(), dto.Items[1].Checked)
	})

	s.Run("IndexOutOfRange_ShouldReturnValidationError", func() {
		s.SetupTest()
		list := s.factory.ShoppingList(s.userID, 1)
		s.repo.On("FindByID", s.ctx, list.ID()).Return(list, nil)

		_, err := s.service.ToggleItem(s.ctx, list.ID(), s.userID, 5)

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
	})

	s.Run("ForeignList_ShouldReturnNotFound", func() {
		s.SetupTest()
		list := s.factory.ShoppingList(uuid.New(), 1)
		s.repo.On("FindByID", s.ctx, list.ID()).Return(list, nil)

		_, err := s.service.ToggleItem(s.ctx, list.ID(), s.userID, 0)

		assert.True(s.T(), apperrors.Is(err, apperrors.CodeShoppingListNotFound))
	})
}

func (s *ShoppingListServiceTestSuite) TestListLists() {
	s.SetupTest()
	active := shopping.StatusActive
	s.repo.On("FindByOwner", s.ctx, s.userID, &active).Return([]*shopping.List{s.factory.ShoppingList(s.userID, 1)}, nil)

	got, err := s.service.ListLists(s.ctx, s.userID, true)

	require.NoError(s.T(), err)
	assert.Len(s.T(), got, 1)
}

func (s *ShoppingListServiceTestSuite) TestSummary() {
	s.SetupTest()
	open := s.factory.ShoppingList(s.userID, 2)
	_, _ = open.ToggleItem(0)
	done := s.factory.ShoppingList(s.userID, 3)
	require.NoError(s.T(), done.SetStatus(shopping.StatusCompleted))
	s.repo.On("FindByOwner", s.ctx, s.userID, (*shopping.Status)(nil)).Return([]*shopping.List{open, done}, nil)

	sum, err := s.service.Summary(s.ctx, s.userID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), &inbound.ShoppingSummaryDTO{
		TotalLists:     2,
		ActiveLists:    1,
		CompletedLists: 1,
		TotalItems:     5,
		CheckedItems:   1,
	}, sum)
}

func TestShoppingListServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShoppingListServiceTestSuite))
}
