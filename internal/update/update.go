// Package update implements the incremental update sequence: the ten
// steps that take one source from "last known raw cache state" to
// "raw cache and normalized store both reflect the latest fetch",
// computing request offsets from the cache before each fetch and
// writing raw results before projecting them.
package update

import (
	"errors"

	"github.com/monitoring-agents/zbxingest/internal/apiclient"
	"github.com/monitoring-agents/zbxingest/internal/normalized"
	"github.com/monitoring-agents/zbxingest/internal/parse"
	"github.com/monitoring-agents/zbxingest/internal/rawcache"
)

// Runner owns the three collaborators one source's update sequence
// needs: the API client, that source's raw cache, and the (process-wide)
// normalized store.
type Runner struct {
	API        *apiclient.Client
	Raw        *rawcache.Cache
	Normalized *normalized.Store
	SourceID   int

	// TriggerHook is forwarded to the trigger fetch's functions-cache
	// extension seam (see parse.TriggerHook). Left nil until that pass
	// exists.
	TriggerHook parse.TriggerHook
}

// Run executes the ten-step sequence from spec §4.5. Any fetch failure
// aborts the sequence immediately, before the corresponding write step
// runs. The returned error is either a fetch error (*rpc.TransportError,
// *rpc.ProtocolError, or *apiclient.ParseError) or a raw cache or
// normalized store error; the poller treats any of them as a failed cycle.
func (r *Runner) Run() error {
	since, err := r.Raw.GetTriggerLastChange()
	if err != nil {
		if !errors.Is(err, rawcache.ErrNotFound) {
			return err
		}
		since = 0
	}

	triggers, err := r.API.GetTriggers(since, r.TriggerHook)
	if err != nil {
		return err
	}
	if err := r.Raw.PutTriggers(triggers); err != nil {
		return err
	}

	items, err := r.API.GetItems()
	if err != nil {
		return err
	}
	if err := r.Raw.PutItems(items); err != nil {
		return err
	}

	hosts, err := r.API.GetHosts()
	if err != nil {
		return err
	}
	if err := r.Raw.PutHosts(hosts); err != nil {
		return err
	}

	apps, err := r.API.GetApplications()
	if err != nil {
		return err
	}
	if err := r.Raw.PutApplications(apps); err != nil {
		return err
	}

	triggerRows, err := r.Raw.ReadTriggersAsNormalized()
	if err != nil {
		return err
	}
	if err := r.Normalized.SetTriggerList(triggerRows, r.SourceID); err != nil {
		return err
	}

	fromID, err := r.Raw.GetLastEventID()
	if err != nil {
		if !errors.Is(err, rawcache.ErrNotFound) {
			return err
		}
		fromID = 0
	} else {
		fromID++
	}

	events, err := r.API.GetEvents(fromID)
	if err != nil {
		return err
	}
	if err := r.Raw.PutEvents(events); err != nil {
		return err
	}

	if err := r.Normalized.AddEventList(rawcache.TransformEventsToNormalized(events, r.SourceID)); err != nil {
		return err
	}
	if err := r.Normalized.AddItemList(rawcache.TransformItemsToNormalized(items, r.SourceID)); err != nil {
		return err
	}

	return nil
}
