// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessages(t *testing.T) {
	msgs, err := decodeMessages([]byte(` {"series":"cpu","ts":1646661900000,"value":12.5,"color":"#f00","desc":"busy"}`))
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "cpu", msgs[0].Series)
	assert.Equal(t, time.UnixMilli(1646661900000), msgs[0].Time())
	assert.Equal(t, 12.5, msgs[0].SampleValue())
	assert.Equal(t, "#f00", msgs[0].Color)
	assert.Equal(t, "busy", msgs[0].Description)

	msgs, err = decodeMessages([]byte(`[{"value":1},{"series":"mem"}]`))
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, 1.0, msgs[0].SampleValue())
	assert.True(t, msgs[0].Time().IsZero())
	assert.True(t, math.IsNaN(msgs[1].SampleValue()))

	_, err = decodeMessages([]byte(`{"value":`))
	assert.Error(t, err)
	_, err = decodeMessages([]byte(`[1, 2]`))
	assert.Error(t, err)
}

func TestNewMessage(t *testing.T) {
	ts := time.UnixMilli(1646661900123)
	msg := NewMessage("cpu", ts, 3, "", "")
	require.NotNil(t, msg.Value)
	assert.Equal(t, 3.0, *msg.Value)
	assert.Equal(t, int64(1646661900123), msg.Timestamp)

	msg = NewMessage("cpu", time.Time{}, math.NaN(), "", "")
	assert.Nil(t, msg.Value)
	assert.Zero(t, msg.Timestamp)
}
