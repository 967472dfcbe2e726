package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netpulse/internal/tool"
)

func TestNew(t *testing.T) {
	reg, err := New("1234")
	require.NoError(t, err)
	assert.Equal(t, 12, reg.Len())

	names := make([]string, 0, reg.Len())
	for _, d := range reg.List() {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{
		"entity_lookup",
		"account_snapshot",
		"account_metrics",
		"audit_feed",
		"app_stats",
		"top_sites_by_traffic",
		"top_users_by_traffic",
		"site_timeseries_summary",
		"site_group_metrics",
		"interface_group_metrics",
		"user_group_metrics",
		"interface_event_summary",
	}, names)
}

func TestNormalizeEmptyYieldsDeclaredDefaults(t *testing.T) {
	for _, d := range Descriptors("1234") {
		t.Run(d.Name(), func(t *testing.T) {
			declared := map[string]any{}
			for name, raw := range d.Tool.InputSchema.Properties {
				if prop, ok := raw.(map[string]any); ok {
					if def, ok := prop["default"]; ok {
						declared[name] = def
					}
				}
			}

			args, err := tool.Normalize(&d, map[string]any{})
			require.NoError(t, err)
			assert.Equal(t, tool.Arguments(declared), args)
			assert.Equal(t, "1234", args["accountID"])
		})
	}
}

func TestAccountIDRequiredWithoutDefault(t *testing.T) {
	for _, d := range Descriptors("") {
		assert.Contains(t, d.Tool.InputSchema.Required, "accountID", d.Name())
		assert.NotContains(t, d.Defaults(), "accountID", d.Name())
	}
}

func TestSiteTimeseriesSummaryInput(t *testing.T) {
	reg, err := New("1234")
	require.NoError(t, err)
	d, err := reg.Lookup("site_timeseries_summary")
	require.NoError(t, err)

	args, err := tool.Normalize(d, map[string]any{"groupInterfaces": true})
	require.NoError(t, err)

	_, err = d.ApplyInput(args)
	var missing *tool.MissingRequiredInputError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "site_timeseries_summary", missing.Tool)
	assert.Contains(t, err.Error(), "entity_lookup")

	args["siteIDs"] = []any{"42"}
	out, err := d.ApplyInput(args)
	require.NoError(t, err)
	assert.Equal(t, false, out["groupInterfaces"])
	assert.Equal(t, true, out["groupDevices"])
	assert.Equal(t, float64(24), out["buckets"])
}

func TestNullCoalescedFilters(t *testing.T) {
	reg, err := New("1234")
	require.NoError(t, err)
	d, err := reg.Lookup("account_metrics")
	require.NoError(t, err)

	args, err := tool.Normalize(d, map[string]any{"siteIDs": `["1"]`})
	require.NoError(t, err)
	out, err := d.ApplyInput(args)
	require.NoError(t, err)

	assert.Equal(t, []any{"1"}, out["siteIDs"])
	assert.Contains(t, out, "userIDs")
	assert.Nil(t, out["userIDs"])
}
