package errors_test

import (
	"github.com/tablewise/setup-api/internal/errors"
)

func (s *ErrorsTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("Title", "is required").
		Fieldf("PlayerCounts", "%d is not a valid player count", 0).
		RequiredField("GameID").
		InvalidField("Condition.IncludeModules", "ids cannot be empty")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "Title: is required")
	s.Assert().Contains(err.Error(), "GameID: is required")
	s.Assert().Contains(err.Error(), "PlayerCounts: 0 is not a valid player count")

	meta := errors.GetMeta(err)
	s.Require().NotNil(meta)
	s.Assert().NotNil(meta["validation_errors"])
}

func (s *ErrorsTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	s.Assert().Nil(vb.Build())
}

func (s *ErrorsTestSuite) TestValidationErrorSortsFields() {
	ve := &errors.ValidationError{Fields: map[string][]string{
		"zeta":  {"late"},
		"alpha": {"early"},
	}}

	// Deterministic output regardless of map order.
	s.Assert().Equal("validation failed: alpha: early; zeta: late", ve.Error())
}
