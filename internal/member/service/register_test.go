package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"guild/internal/identity"
	identitymocks "guild/internal/identity/mocks"
	"guild/internal/member/models"
	"guild/internal/storage"
	"guild/pkg/action"
	"guild/pkg/domain"
	dErrors "guild/pkg/domain-errors"
)

type fixtures struct {
	people       *storage.Memory[*models.Person]
	members      *storage.Memory[*models.Member]
	educations   *storage.Memory[*models.Education]
	experiences  *storage.Memory[*models.WorkExperience]
	institutions *storage.Memory[*models.Institution]
	accounts     *storage.Memory[*identity.Account]
	runner       *storage.MemoryTx
}

func newFixtures() *fixtures {
	f := &fixtures{
		people:       storage.NewMemory[*models.Person](),
		members:      storage.NewMemory[*models.Member](),
		educations:   storage.NewMemory[*models.Education](),
		experiences:  storage.NewMemory[*models.WorkExperience](),
		institutions: storage.NewMemory[*models.Institution](),
		accounts:     storage.NewMemory[*identity.Account](),
	}
	f.runner = storage.NewMemoryTx(f.people, f.members, f.educations, f.experiences, f.institutions, f.accounts)
	return f
}

// newService wires a service over in-memory stores. A nil manager selects the
// real repository-backed credential manager, whose writes join the same
// transaction runner as everything else.
func (f *fixtures) newService(manager identity.Manager, opts ...Option) *Service {
	if manager == nil {
		manager = identity.NewService(storage.NewRepository[*identity.Account](f.accounts), []byte("test-signing-key"))
	}
	return New(
		storage.NewRepository[*models.Person](f.people),
		storage.NewRepository[*models.Member](f.members),
		storage.NewRepository[*models.Education](f.educations),
		storage.NewRepository[*models.WorkExperience](f.experiences),
		storage.NewRepository[*models.Institution](f.institutions),
		manager,
		f.runner,
		slog.Default(),
		opts...,
	)
}

func validInput() RegisterInput {
	return RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.org",
		Username:  "ada",
		Password:  "correct-horse",
	}
}

type RegisterSuite struct {
	suite.Suite
	fx  *fixtures
	svc *Service
	ctx context.Context
}

func TestRegisterSuite(t *testing.T) {
	suite.Run(t, new(RegisterSuite))
}

func (s *RegisterSuite) SetupTest() {
	s.fx = newFixtures()
	s.svc = s.fx.newService(nil)
	s.ctx = context.Background()
}

func (s *RegisterSuite) countRows() (people, members, accounts int) {
	peopleRepo := storage.NewRepository[*models.Person](s.fx.people)
	memberRepo := storage.NewRepository[*models.Member](s.fx.members)
	accountRepo := storage.NewRepository[*identity.Account](s.fx.accounts)
	return len(peopleRepo.ListAll(s.ctx).Result),
		len(memberRepo.ListAll(s.ctx).Result),
		len(accountRepo.ListAll(s.ctx).Result)
}

func (s *RegisterSuite) TestCommit() {
	resp := s.svc.Register(s.ctx, validInput())
	s.Require().True(resp.Successful, resp.Message)

	result := resp.Result
	s.False(result.PersonID.IsNil())
	s.False(result.MemberID.IsNil())
	s.False(result.AccountID.IsNil())
	s.NotEmpty(result.Number)
	s.Equal(string(models.StatusPending), result.Status)

	people, members, accounts := s.countRows()
	s.Equal([3]int{1, 1, 1}, [3]int{people, members, accounts})

	s.Run("default role was granted", func() {
		manager := identity.NewService(storage.NewRepository[*identity.Account](s.fx.accounts), nil)
		account, err := manager.FindByUsername(s.ctx, "ada")
		s.Require().NoError(err)
		s.True(account.HasRole(models.RoleMember))
	})
}

func (s *RegisterSuite) TestStructuralValidation() {
	resp := s.svc.Register(s.ctx, RegisterInput{Email: "not-an-email", Password: "short"})
	s.Require().False(resp.Successful)
	s.Equal(action.CodeInputError, resp.Code)
	s.NotEmpty(resp.Errors)

	// Nothing was created and no transaction was needed.
	people, members, accounts := s.countRows()
	s.Equal([3]int{0, 0, 0}, [3]int{people, members, accounts})
}

func (s *RegisterSuite) TestNotIdempotent() {
	s.Require().True(s.svc.Register(s.ctx, validInput()).Successful)

	s.Run("same email conflicts", func() {
		resp := s.svc.Register(s.ctx, validInput())
		s.Require().False(resp.Successful)
		s.Equal(action.CodeConflict, resp.Code)
	})

	s.Run("same username with fresh email conflicts", func() {
		input := validInput()
		input.Email = "ada2@example.org"
		resp := s.svc.Register(s.ctx, input)
		s.Require().False(resp.Successful)
		s.Equal(action.CodeConflict, resp.Code)
	})

	s.Run("no partial rows from the failed attempts", func() {
		people, members, accounts := s.countRows()
		s.Equal([3]int{1, 1, 1}, [3]int{people, members, accounts})
	})
}

func (s *RegisterSuite) TestRollbackOnRoleAssignment() {
	ctrl := gomock.NewController(s.T())
	manager := identitymocks.NewMockManager(ctrl)
	svc := s.fx.newService(manager)

	account := &identity.Account{Username: "ada"}
	manager.EXPECT().FindByUsername(gomock.Any(), "ada").
		Return(nil, dErrors.New(dErrors.CodeNotFound, "account not found"))
	manager.EXPECT().CreateAccount(gomock.Any(), gomock.Any(), "ada", gomock.Any()).
		Return(account, nil)
	manager.EXPECT().AssignRole(gomock.Any(), gomock.Any(), models.RoleMember).
		Return(dErrors.New(dErrors.CodeInternal, "identity provider unavailable"))

	resp := svc.Register(s.ctx, validInput())
	s.Require().False(resp.Successful)
	s.Equal(action.CodeDatabaseError, resp.Code)
	s.Contains(resp.Message, "role assignment failed")

	// The profile and membership rows created earlier in the same
	// transaction must not be visible after the call returns.
	people, members, _ := s.countRows()
	s.Equal(0, people)
	s.Equal(0, members)
}

func (s *RegisterSuite) TestRollbackOnAccountCreation() {
	ctrl := gomock.NewController(s.T())
	manager := identitymocks.NewMockManager(ctrl)
	svc := s.fx.newService(manager)

	manager.EXPECT().FindByUsername(gomock.Any(), "ada").
		Return(nil, dErrors.New(dErrors.CodeNotFound, "account not found"))
	manager.EXPECT().CreateAccount(gomock.Any(), gomock.Any(), "ada", gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeConflict, "username is already taken"))

	resp := svc.Register(s.ctx, validInput())
	s.Require().False(resp.Successful)
	s.Equal(action.CodeConflict, resp.Code)

	people, members, _ := s.countRows()
	s.Equal(0, people)
	s.Equal(0, members)
}

func (s *RegisterSuite) TestPanicBecomesDatabaseError() {
	ctrl := gomock.NewController(s.T())
	manager := identitymocks.NewMockManager(ctrl)
	svc := s.fx.newService(manager)

	manager.EXPECT().FindByUsername(gomock.Any(), "ada").
		Return(nil, dErrors.New(dErrors.CodeNotFound, "account not found"))
	manager.EXPECT().CreateAccount(gomock.Any(), gomock.Any(), "ada", gomock.Any()).
		DoAndReturn(func(context.Context, domain.PersonID, string, string) (*identity.Account, error) {
			panic("identity provider wedged")
		})

	resp := svc.Register(s.ctx, validInput())
	s.Require().False(resp.Successful)
	s.Equal(action.CodeDatabaseError, resp.Code)
	s.Contains(resp.Message, "identity provider wedged")

	people, members, _ := s.countRows()
	s.Equal(0, people)
	s.Equal(0, members)
}
