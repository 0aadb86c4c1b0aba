package utils

import (
	"os"
	"testing"

	"go.viam.com/test"
)

func TestResolveFile(t *testing.T) {
	_, err := os.Stat(ResolveFile("referenceframe/data/two_link.json"))
	test.That(t, err, test.ShouldBeNil)
}

func TestEnsureExtension(t *testing.T) {
	test.That(t, EnsureExtension("arm", "png"), test.ShouldEqual, "arm.png")
	test.That(t, EnsureExtension("arm.png", ".png"), test.ShouldEqual, "arm.png")
	test.That(t, EnsureExtension("out/ARM.PNG", ".png"), test.ShouldEqual, "out/ARM.PNG")
	test.That(t, EnsureExtension("arm.jpg", ".png"), test.ShouldEqual, "arm.jpg.png")
}
