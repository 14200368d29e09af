//go:build !windows

package sysmem

func nativeAligned() Aligned {
	return nil
}
