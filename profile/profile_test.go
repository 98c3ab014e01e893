package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	pprofile "github.com/google/pprof/profile"
	"github.com/stretchr/testify/require"

	"github.com/gomip/gomip/enginetest"
	"github.com/gomip/gomip/model"
	"github.com/gomip/gomip/profile"
)

func buildSmallModel(t *testing.T) *model.Model {
	t.Helper()
	assert := require.New(t)

	m := model.NewModel(enginetest.New())
	x, err := m.AddVar(model.WithName("x"))
	assert.NoError(err)
	y, err := m.AddVar(model.WithName("y"), model.WithVarType(model.Binary))
	assert.NoError(err)

	_, err = m.AddConstr(model.NewLinExpr(model.SenseLE, 10).AddTerm(x, 1).AddTerm(y, 3), "cap")
	assert.NoError(err)
	return m
}

func TestSessionCounts(t *testing.T) {
	assert := require.New(t)

	p := profile.Start(profile.WithNoOutput())
	buildSmallModel(t)
	p.Stop()

	assert.Equal(2, p.NbVariables())
	assert.Equal(1, p.NbConstraints())
	assert.Contains(p.Top(), "Showing nodes accounting for 3, 100% of 3 total")
}

func TestOverlappingSessions(t *testing.T) {
	assert := require.New(t)

	m := model.NewModel(enginetest.New())

	outer := profile.Start(profile.WithNoOutput())
	x, err := m.AddVar()
	assert.NoError(err)

	inner := profile.Start(profile.WithNoOutput())
	_, err = m.AddVar()
	assert.NoError(err)
	_, err = m.AddConstr(model.NewLinExpr(model.SenseGE, 1).AddTerm(x, 1), "")
	assert.NoError(err)
	inner.Stop()

	outer.Stop()

	assert.Equal(2, outer.NbVariables())
	assert.Equal(1, outer.NbConstraints())
	assert.Equal(1, inner.NbVariables())
	assert.Equal(1, inner.NbConstraints())
}

func TestWriteAndParse(t *testing.T) {
	assert := require.New(t)

	path := filepath.Join(t.TempDir(), "build.pprof")
	p := profile.Start(profile.WithPath(path))
	buildSmallModel(t)
	p.Stop()

	f, err := os.Open(path)
	assert.NoError(err)
	defer f.Close()

	parsed, err := pprofile.Parse(f)
	assert.NoError(err)
	assert.NoError(parsed.CheckValid())
	assert.Len(parsed.SampleType, 2)
	assert.Equal("variables", parsed.SampleType[0].Type)
	assert.Equal("constraints", parsed.SampleType[1].Type)
	assert.Len(parsed.Sample, 3)
}
