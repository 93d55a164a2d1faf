// Package page drives a MediaFire file page: navigation with a bounded
// page-load timeout, detection of invalid/deleted-file pages, and the
// ordered search for the download button.
package page
