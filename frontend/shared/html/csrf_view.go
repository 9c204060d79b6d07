package html

import "warehouse/infrastructure/session"

// CSRFCookieName is the cookie the form script copies into each POST.
const CSRFCookieName = session.CSRFCookieName

// CSRFFormScript adds a hidden _csrf field to every POST form, including
// forms inside the open dialog, from the CSRF cookie.
func CSRFFormScript() string {
	return `<script>
(function () {
  function readCookie(name) {
    var prefix = name + "=";
    var parts = document.cookie ? document.cookie.split(";") : [];
    for (var i = 0; i < parts.length; i++) {
      var c = parts[i].trim();
      if (c.indexOf(prefix) === 0) return decodeURIComponent(c.substring(prefix.length));
    }
    return "";
  }

  function addToken() {
    var token = readCookie("` + CSRFCookieName + `");
    if (!token) return;
    document.querySelectorAll("form[method='post'], form[method='POST']").forEach(function (form) {
      if (form.querySelector("input[name='_csrf']")) return;
      var input = document.createElement("input");
      input.type = "hidden";
      input.name = "_csrf";
      input.value = token;
      form.appendChild(input);
    });
  }

  if (document.readyState === "loading") {
    document.addEventListener("DOMContentLoaded", addToken);
  } else {
    addToken();
  }
})();
</script>`
}
