package toml

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestRoundTrip_ArbitraryDocument(t *testing.T) {
	convey.Convey("a document with tables, arrays, and comments", t, func() {
		src := `# top-level config
title = "TOML Example"

[owner]
name = "Tom Preston-Werner"
dob = 1979-05-27T07:32:00-08:00

[database]
enabled = true
ports = [ 8001, 8001, 8002 ]
data = [ ["delta", "phi"], [3.14] ]
temp_targets = { cpu = 79.5, case = 72.0 }

[servers]

  [servers.alpha]
  ip = "10.0.0.1"
  role = "frontend"

  [servers.beta]
  ip = "10.0.0.2"
  role = "backend"
`
		convey.Convey("parsing then re-emitting reproduces the source exactly", func() {
			doc, err := Parse(src)
			convey.So(err, convey.ShouldBeNil)
			convey.So(doc.String(), convey.ShouldEqual, src)
		})

		convey.Convey("queries resolve nested values by dotted path", func() {
			doc, err := Parse(src)
			convey.So(err, convey.ShouldBeNil)

			roleItem, found := doc.Get("servers.alpha.role", nil)
			convey.So(found, convey.ShouldBeTrue)
			role := roleItem.(*StringItem)
			convey.So(role.Value, convey.ShouldEqual, "frontend")

			cpuItem, found := doc.Get("database.temp_targets.cpu", nil)
			convey.So(found, convey.ShouldBeTrue)
			cpu := cpuItem.(*FloatItem)
			v, err := cpu.Float64()
			convey.So(err, convey.ShouldBeNil)
			convey.So(v, convey.ShouldEqual, 79.5)
		})

		convey.Convey("a mutation round-trips through Parse again", func() {
			doc, err := Parse(src)
			convey.So(err, convey.ShouldBeNil)
			convey.So(doc.Set("owner.name", "Ada Lovelace"), convey.ShouldBeNil)

			out := doc.String()
			reparsed, err := Parse(out)
			convey.So(err, convey.ShouldBeNil)

			nameItem, found := reparsed.Get("owner.name", nil)
			convey.So(found, convey.ShouldBeTrue)
			convey.So(nameItem.(*StringItem).Value, convey.ShouldEqual, "Ada Lovelace")

			dobItem, found := reparsed.Get("owner.dob", nil)
			convey.So(found, convey.ShouldBeTrue)
			convey.So(dobItem.(*DateTimeItem).Raw, convey.ShouldEqual, "1979-05-27T07:32:00-08:00")
		})
	})
}

func TestRoundTrip_SortKeysEmit(t *testing.T) {
	convey.Convey("Emit with SortKeys reorders a table's keys", t, func() {
		doc, err := Parse("zebra = 1\napple = 2\nmango = 3\n")
		convey.So(err, convey.ShouldBeNil)

		out := Emit(doc, EmitOptions{SortKeys: true})
		sorted, err := Parse(out)
		convey.So(err, convey.ShouldBeNil)
		convey.So(sorted.Root().Keys(), convey.ShouldResemble, []string{"apple", "mango", "zebra"})

		convey.Convey("the unsorted document is untouched", func() {
			convey.So(doc.Root().Keys(), convey.ShouldResemble, []string{"zebra", "apple", "mango"})
		})
	})
}
