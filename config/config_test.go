package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tvgrab-cli/tvgrab/filesystem"
	"github.com/tvgrab-cli/tvgrab/key"
)

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Storefront table carries the baseline id", func() {
			So(Setup(), ShouldBeNil)
			ids := viper.GetStringMap(key.StorefrontIDs)
			So(ids, ShouldContainKey, "us")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("storefront.default"), ShouldEqual, "storefront_default")
		})
	})
}

func TestFieldEnv(t *testing.T) {
	Convey("Field Env naming", t, func() {
		f := Default[key.StorefrontDefault]
		So(f.Env(), ShouldEqual, "TVGRAB_STOREFRONT_DEFAULT")
	})
}
