package printer

import (
	"errors"
)

// BannerText is printed centered at boot.
const BannerText = "Meshtastic"

const (
	bannerLineHeight = 30
	bannerFeed       = 2
)

// Banner resets the printer and prints the boot banner, leaving it left justified.
func Banner(d Driver) error {
	return errors.Join(
		d.Reset(),
		d.SetLineHeight(bannerLineHeight),
		d.SetSize(SizeMedium),
		d.Justify(Center),
		d.Print([]byte(BannerText)),
		d.Feed(bannerFeed),
		d.Justify(Left),
	)
}

// Info prints one "label: value" line.
func Info(d Driver, label, value string) error {
	return d.Println([]byte(label + ": " + value))
}
