package liveness

import (
	"testing"
	"time"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/gconf"
	"github.com/heirloom-labs/heirloom/heirloomtest"
	"github.com/heirloom-labs/heirloom/store"
	"github.com/heirloom-labs/heirloom/x/registry"
	. "github.com/smartystreets/goconvey/convey"
)

const day = int64(24 * 60 * 60)

func TestTracker(t *testing.T) {
	Convey("Given a tracker with a 30 day inactivity threshold", t, func() {
		db := store.MemStore()
		err := gconf.Save(db, packageName, &Configuration{
			Metadata:            &heirloom.Metadata{Schema: 1},
			InactivityThreshold: 30 * day,
		})
		So(err, ShouldBeNil)

		tracker := NewTracker()
		created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		lastProof := heirloom.AsUnixTime(created)

		Convey("An owner seen a day ago is alive", func() {
			ctx := heirloomtest.BlockContext(10, created.Add(24*time.Hour))
			dead, err := tracker.IsPresumedDeceased(ctx, db, lastProof)
			So(err, ShouldBeNil)
			So(dead, ShouldBeFalse)
		})

		Convey("An owner is presumed deceased exactly at the threshold", func() {
			ctx := heirloomtest.BlockContext(10, created.Add(30*24*time.Hour))
			dead, err := tracker.IsPresumedDeceased(ctx, db, lastProof)
			So(err, ShouldBeNil)
			So(dead, ShouldBeTrue)

			Convey("but not a second before", func() {
				ctx := heirloomtest.BlockContext(10, created.Add(30*24*time.Hour-time.Second))
				dead, err := tracker.IsPresumedDeceased(ctx, db, lastProof)
				So(err, ShouldBeNil)
				So(dead, ShouldBeFalse)
			})
		})

		Convey("Raising the threshold applies to past proofs", func() {
			ctx := heirloomtest.BlockContext(10, created.Add(40*24*time.Hour))
			dead, err := tracker.IsPresumedDeceased(ctx, db, lastProof)
			So(err, ShouldBeNil)
			So(dead, ShouldBeTrue)

			err = gconf.Save(db, packageName, &Configuration{
				Metadata:            &heirloom.Metadata{Schema: 1},
				InactivityThreshold: 60 * day,
			})
			So(err, ShouldBeNil)

			dead, err = tracker.IsPresumedDeceased(ctx, db, lastProof)
			So(err, ShouldBeNil)
			So(dead, ShouldBeFalse)
		})

		Convey("Heartbeats are recorded at block time", func() {
			owner := heirloomtest.NewCondition().Address()
			_, err := tracker.LastSeen(db, owner)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)

			now := created.Add(5 * time.Hour)
			ctx := heirloomtest.BlockContext(11, now)
			at, err := tracker.Heartbeat(ctx, db, owner)
			So(err, ShouldBeNil)
			So(at, ShouldEqual, heirloom.AsUnixTime(now))

			seen, err := tracker.LastSeen(db, owner)
			So(err, ShouldBeNil)
			So(seen, ShouldEqual, at)
		})

		Convey("The latest proof of life is the later of will and heartbeat", func() {
			owner := heirloomtest.NewCondition().Address()
			proof, err := tracker.LatestProof(db, owner, lastProof)
			So(err, ShouldBeNil)
			So(proof, ShouldEqual, lastProof)

			seen := heirloom.AsUnixTime(created.Add(10 * 24 * time.Hour))
			_, err = tracker.Heartbeat(heirloomtest.BlockContext(12, seen.Time()), db, owner)
			So(err, ShouldBeNil)

			proof, err = tracker.LatestProof(db, owner, lastProof)
			So(err, ShouldBeNil)
			So(proof, ShouldEqual, seen)

			newer := seen.Add(time.Hour)
			proof, err = tracker.LatestProof(db, owner, newer)
			So(err, ShouldBeNil)
			So(proof, ShouldEqual, newer)
		})

		Convey("A context without block time is an error", func() {
			_, err := tracker.IsPresumedDeceased(heirloomtest.BlockContext(1, time.Time{}), db, lastProof)
			So(errors.ErrHuman.Is(err), ShouldBeTrue)
		})
	})

	Convey("Given no configuration", t, func() {
		db := store.MemStore()
		ctx := heirloomtest.BlockContext(1, time.Now())
		_, err := NewTracker().IsPresumedDeceased(ctx, db, 1)
		So(errors.ErrNotFound.Is(err), ShouldBeTrue)
	})
}

func TestActivityHook(t *testing.T) {
	Convey("Given a registry notifying the tracker", t, func() {
		db := store.MemStore()
		tracker := NewTracker()
		reg := registry.NewController(tracker.ActivityHook())

		alice := heirloomtest.NewCondition().Address()
		bob := heirloomtest.NewCondition().Address()
		operator := heirloomtest.NewCondition().Address()
		So(reg.Issue(db, alice, "house", 10), ShouldBeNil)
		So(reg.Authorize(db, alice, operator, true), ShouldBeNil)

		now := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
		ctx := heirloomtest.BlockContext(3, now)

		Convey("A holder moving its own asset is seen", func() {
			So(reg.Transfer(ctx, db, alice, alice, bob, "house", 1), ShouldBeNil)
			seen, err := tracker.LastSeen(db, alice)
			So(err, ShouldBeNil)
			So(seen, ShouldEqual, heirloom.AsUnixTime(now))
		})

		Convey("An operator moving the asset is not a sign of life", func() {
			So(reg.Transfer(ctx, db, operator, alice, bob, "house", 1), ShouldBeNil)
			_, err := tracker.LastSeen(db, alice)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})
	})
}

func TestElapsed(t *testing.T) {
	Convey("Elapsed compares the distance with the threshold", t, func() {
		So(Elapsed(100, 50, 50), ShouldBeTrue)
		So(Elapsed(100, 51, 50), ShouldBeFalse)
		So(Elapsed(100, 200, 1), ShouldBeFalse)
	})
}
