package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/RamiMonso/rsi-csv/internal/types"
	"github.com/RamiMonso/rsi-csv/pkg/errors"
)

type RegistryTestSuite struct {
	suite.Suite
	registry Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) SetupTest() {
	suite.registry = NewRegistry()
}

func (suite *RegistryTestSuite) TestRegisterAndGet() {
	err := suite.registry.Register(NewRSI())
	suite.NoError(err)

	got, err := suite.registry.Get(types.IndicatorTypeRSI)
	suite.NoError(err)
	suite.NotNil(got)
	suite.Equal(types.IndicatorTypeRSI, got.Name())
}

func (suite *RegistryTestSuite) TestRegisterDuplicate() {
	suite.NoError(suite.registry.Register(NewRSI()))

	err := suite.registry.Register(NewRSI())
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorAlreadyExists))
}

func (suite *RegistryTestSuite) TestGetMissing() {
	_, err := suite.registry.Get(types.IndicatorTypeRSI)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestList() {
	suite.Empty(suite.registry.List())

	suite.NoError(suite.registry.Register(NewRSI()))
	suite.Equal([]types.IndicatorType{types.IndicatorTypeRSI}, suite.registry.List())
}

func (suite *RegistryTestSuite) TestRemove() {
	suite.NoError(suite.registry.Register(NewRSI()))
	suite.NoError(suite.registry.Remove(types.IndicatorTypeRSI))

	err := suite.registry.Remove(types.IndicatorTypeRSI)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestDefaultRegistry() {
	registry := NewDefaultRegistry()

	got, err := registry.Get(types.IndicatorTypeRSI)
	suite.NoError(err)
	suite.Equal(types.IndicatorTypeRSI, got.Name())
}
