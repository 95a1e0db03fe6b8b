package builtin

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iscript/internal/commands"
	"iscript/internal/testutils"
)

func TestSwirlFilter(t *testing.T) {
	filter := SwirlFilter(90, 640, 480)

	assert.True(t, strings.HasPrefix(filter, "format=yuv444p,scale=480:480,geq='p(W*0.5+(hypot(X-W*0.5,Y-H*0.5)+1e-6)*cos("))
	assert.True(t, strings.HasSuffix(filter, "',scale=640:480,setsar=1:1,format=yuv420p"))
	assert.Contains(t, filter, "((90)/180*PI)")
	assert.Contains(t, filter, "if(lt(hypot(X-W*0.5,Y-H*0.5)+1e-6,min(W,H)*0.5),1-(hypot(X-W*0.5,Y-H*0.5)+1e-6)/(min(W,H)*0.5),0)^2")
	assert.NotContains(t, filter, "{")
}

func TestExplodeFilter(t *testing.T) {
	filter := ExplodeFilter(1, 320, 240)

	assert.True(t, strings.HasPrefix(filter, "format=yuv444p,scale=240:240,geq='p((W*0.5)+(X-W*0.5)/(lte((hypot(X-W*0.5,Y-H*0.5)),(min(W,H)*0.5))*(1+(1)*2*atan("))
	assert.Contains(t, filter, "gt((hypot(X-W*0.5,Y-H*0.5)),(min(W,H)*0.5))*1)")
	assert.True(t, strings.HasSuffix(filter, "',scale=320:240,setsar=1:1,format=yuv420p"))
	assert.NotContains(t, filter, "{")
}

func TestDistortCommands_ProbeFrameSize(t *testing.T) {
	tools := testutils.NewFakeToolchain()
	tools.Prober.Properties["width"] = 640
	tools.Prober.Properties["height"] = 360
	s := testutils.NewSession(t, t.TempDir(), tools)
	testutils.AddMedia(t, s, "clip", "clip.mp4", "video")

	explode, _ := commands.GlobalRegistry.Get("explode")
	_, err := explode.Execute(context.Background(), s, []string{"clip"})
	require.NoError(t, err)

	calls := tools.Transcoder.Recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"-vf", ExplodeFilter(1, 640, 360)}, calls[0].Args)
	assert.Equal(t, []string{"width", "height"}, tools.Prober.Calls)

	swirl, _ := commands.GlobalRegistry.Get("swirl")
	_, err = swirl.Execute(context.Background(), s, []string{"clip", "45"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-vf", SwirlFilter(45, 640, 360)}, tools.Transcoder.Recorded()[1].Args)
}

func TestDistortCommands_ProbeFailure(t *testing.T) {
	tools := testutils.NewFakeToolchain()
	tools.Prober.Err = errors.New("no video stream")
	s := testutils.NewSession(t, t.TempDir(), tools)
	testutils.AddMedia(t, s, "clip", "clip.mp3", "audio")

	swirl, _ := commands.GlobalRegistry.Get("swirl")
	_, err := swirl.Execute(context.Background(), s, []string{"clip", "45"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to probe width")
	assert.Empty(t, tools.Transcoder.Recorded())
}
