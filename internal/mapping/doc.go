// Package mapping defines the mapping document an editing session produces
// and reads and writes it as a mapping file.
//
// A document lists, per buildable category, the attributes that are bound
// to a source metric (or to a resource) together with the conversion the
// renderer must apply. Unbound attributes are not listed.
//
// # Formats
//
// The format follows the file extension. YAML (.yaml, .yml, default):
//
//	version: "1"
//	linkings:
//	  - target: cellar
//	    bindings:
//	      - to: height
//	        source: method
//	        from: linesOfCode
//	        conversion: quantize
//	      - to: character
//	        resource: stone
//	resources:
//	  - stone
//
// XML (.xml), the layout the city renderer consumes:
//
//	<mapping version="2.0">
//	  <resources>
//	    <constant id="stone" value="stone"/>
//	  </resources>
//	  <linking source="method" target="cellar">
//	    <binding from="linesOfCode" to="height">
//	      <conversions><conversion type="quantization"/></conversions>
//	    </binding>
//	    <binding from="${stone}" to="character"/>
//	  </linking>
//	</mapping>
//
// Save writes through a temporary file in the destination directory, so a
// failed save never leaves a partial mapping file behind.
package mapping
